package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perr "tsdash/internal/platform/errors"
)

// QueryString returns the trimmed query value or def
func QueryString(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return def
}

// QueryInt parses an integer query value bounded to [lo, hi]
// missing means def, anything unparsable or out of range is a validation error
func QueryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be an integer", key), key)
	}
	if n < lo || n > hi {
		return 0, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be between %d and %d", key, lo, hi), key)
	}
	return n, nil
}
