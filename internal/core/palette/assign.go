package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	perr "tsdash/internal/platform/errors"
)

// ColorPair is the band fill and the line color of one series
type ColorPair struct {
	Fill Color `json:"fillcolor"`
	Line Color `json:"line"`
}

// UnmarshalJSON requires both colors; a missing or null one is InvalidArgument
func (p *ColorPair) UnmarshalJSON(b []byte) error {
	var raw struct {
		Fill *Color `json:"fillcolor"`
		Line *Color `json:"line"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		if _, ok := perr.As(err); ok {
			return err
		}
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad color pair")
	}
	if raw.Fill == nil || raw.Line == nil {
		return perr.InvalidArgf("color pair needs fillcolor and line")
	}
	*p = ColorPair{Fill: *raw.Fill, Line: *raw.Line}
	return nil
}

// Lookup maps series external id to its colors; it only grows
type Lookup map[string]ColorPair

// Clone returns a copy that never aliases l
func (l Lookup) Clone() Lookup {
	out := make(Lookup, len(l))
	maps.Copy(out, l)
	return out
}

// Has reports whether every id already has colors
func (l Lookup) Has(ids ...string) bool {
	for _, id := range ids {
		if _, ok := l[id]; !ok {
			return false
		}
	}
	return true
}

// Scope decides who owns the cursor
type Scope string

const (
	// ScopeSession seeds a cursor per call from the size of the prior lookup
	ScopeSession Scope = "session"
	// ScopeProcess shares one cursor across every call in the process
	ScopeProcess Scope = "process"
)

// ParseScope accepts "session" or "process", case insensitive
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeSession, "":
		return ScopeSession, nil
	case ScopeProcess:
		return ScopeProcess, nil
	}
	return "", perr.InvalidArgf("unknown palette scope %q", s)
}

// Assigner hands out ColorPairs for series ids
type Assigner struct {
	scope  Scope
	pal    []Color
	shared *Cursor
}

// NewAssigner builds an assigner over pal, Paired when empty
func NewAssigner(scope Scope, pal []Color) *Assigner {
	if len(pal) == 0 {
		pal = Paired()
	}
	a := &Assigner{scope: scope, pal: pal}
	if scope == ScopeProcess {
		a.shared = NewCursor(pal, 0)
	}
	return a
}

// Scope reports the cursor scope
func (a *Assigner) Scope() Scope { return a.scope }

// Assign returns one pair per id, in order, and the grown lookup
// known ids keep their pair, new ids take the next two palette colors,
// repeated ids share a pair; prior is left untouched
func (a *Assigner) Assign(ids []string, prior Lookup) ([]ColorPair, Lookup) {
	next := prior.Clone()
	out := make([]ColorPair, 0, len(ids))
	if len(ids) == 0 {
		return out, next
	}

	cur := a.shared
	if cur == nil {
		cur = NewCursor(a.pal, 2*len(prior))
	}
	for _, id := range ids {
		p, ok := next[id]
		if !ok {
			p = cur.NextPair()
			next[id] = p
		}
		out = append(out, p)
	}
	return out, next
}

// MarshalLookup encodes l as a JSON object with sorted keys
// nil encodes as {}
func MarshalLookup(l Lookup) ([]byte, error) {
	if l == nil {
		l = Lookup{}
	}
	return json.Marshal(l)
}

// UnmarshalLookup decodes a blob written by MarshalLookup
// empty input or null is an empty lookup; bad JSON or channels are InvalidArgument
func UnmarshalLookup(b []byte) (Lookup, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return Lookup{}, nil
	}
	var l Lookup
	if err := json.Unmarshal(b, &l); err != nil {
		if _, ok := perr.As(err); ok {
			return nil, perr.WithField(err, "colors")
		}
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad color lookup"), "colors")
	}
	if l == nil {
		l = Lookup{}
	}
	for id := range l {
		if strings.TrimSpace(id) == "" {
			return nil, perr.WithField(perr.InvalidArgf("color lookup has a blank id"), "colors")
		}
	}
	return l, nil
}

// String renders a lookup for logs
func (l Lookup) String() string { return fmt.Sprintf("Lookup(%d)", len(l)) }
