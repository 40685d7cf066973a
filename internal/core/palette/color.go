// Package palette assigns stable display colors to series
package palette

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	perr "tsdash/internal/platform/errors"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is RGBA with every channel in [0,1]
// build it with NewColor or ParseHex so the range holds
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// NewColor validates every channel
func NewColor(r, g, b, a float64) (Color, error) {
	c := Color{R: r, G: g, B: b, A: a}
	if err := c.Validate(); err != nil {
		return Color{}, err
	}
	return c, nil
}

// ParseHex reads #rrggbb or #rgb as an opaque color
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	if len(s) != 7 {
		return Color{}, perr.InvalidArgf("bad hex color %q", s)
	}
	cc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad hex color %q", s)
	}
	return Color{R: cc.R, G: cc.G, B: cc.B, A: 1}, nil
}

// Validate returns InvalidArgument naming the first channel outside [0,1]
func (c Color) Validate() error {
	for _, ch := range [...]struct {
		name string
		v    float64
	}{{"r", c.R}, {"g", c.G}, {"b", c.B}, {"a", c.A}} {
		// written so NaN fails too
		if !(ch.v >= 0 && ch.v <= 1) {
			return perr.WithField(perr.InvalidArgf("color channel %s=%v must be within [0,1]", ch.name, ch.v), ch.name)
		}
	}
	return nil
}

// WithAlpha returns a copy with alpha replaced
func (c Color) WithAlpha(a float64) (Color, error) {
	return NewColor(c.R, c.G, c.B, a)
}

func (c Color) rgb() colorful.Color { return colorful.Color{R: c.R, G: c.G, B: c.B} }

// CSS is rgb(r,g,b) with 8 bit channels
func (c Color) CSS() string {
	r, g, b := c.rgb().RGB255()
	return "rgb(" + itoa(r) + "," + itoa(g) + "," + itoa(b) + ")"
}

// CSSA is rgba(r,g,b,a) with 8 bit channels and alpha to three places
func (c Color) CSSA() string {
	r, g, b := c.rgb().RGB255()
	return "rgba(" + itoa(r) + "," + itoa(g) + "," + itoa(b) + "," + alpha(c.A) + ")"
}

// LightCSS lifts every channel by 1-max(r,g,b) so the brightest reaches 1
func (c Color) LightCSS() string {
	d := 1 - math.Max(c.R, math.Max(c.G, c.B))
	return Color{R: c.R + d, G: c.G + d, B: c.B + d, A: c.A}.CSSA()
}

// Hex is #rrggbb, alpha dropped
func (c Color) Hex() string { return c.rgb().Hex() }

// UnmarshalJSON defaults a missing alpha to 1 and validates the channels
func (c *Color) UnmarshalJSON(b []byte) error {
	var raw struct {
		R *float64 `json:"r"`
		G *float64 `json:"g"`
		B *float64 `json:"b"`
		A *float64 `json:"a"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad color")
	}
	if raw.R == nil || raw.G == nil || raw.B == nil {
		return perr.InvalidArgf("color needs r, g and b")
	}
	a := 1.0
	if raw.A != nil {
		a = *raw.A
	}
	v, err := NewColor(*raw.R, *raw.G, *raw.B, a)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func itoa(v uint8) string { return strconv.Itoa(int(v)) }

func alpha(a float64) string {
	return strconv.FormatFloat(math.Round(a*1000)/1000, 'f', -1, 64)
}
