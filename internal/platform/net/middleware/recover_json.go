package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "tsdash/internal/platform/errors"
	"tsdash/internal/platform/logger"
	pnet "tsdash/internal/platform/net"
	phttp "tsdash/internal/platform/net/http"
)

// RecoverJSON converts panics into the JSON error envelope and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status := stdhttp.StatusInternalServerError
			phttp.JSON(w, status, phttp.Envelope{
				StatusCode: status,
				Status:     stdhttp.StatusText(status),
				Code:       perr.ErrorCodePanic,
				Error:      "panic recovered",
				RequestID:  pnet.RequestID(r.Context()),
			})
		}()
		next.ServeHTTP(w, r)
	})
}
