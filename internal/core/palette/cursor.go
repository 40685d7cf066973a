package palette

import "sync"

// paired is the 12 color qualitative "Paired" palette: light/dark couples
var paired = [...]string{
	"#a6cee3", "#1f78b4", "#b2df8a", "#33a02c", "#fb9a99", "#e31a1c",
	"#fdbf6f", "#ff7f00", "#cab2d6", "#6a3d9a", "#ffff99", "#b15928",
}

// Paired returns the default palette; each call gets its own slice
func Paired() []Color {
	out := make([]Color, len(paired))
	for i, h := range paired {
		c, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

// Cursor walks a palette forever
// safe for concurrent use; a pair is drawn under one lock
type Cursor struct {
	mu  sync.Mutex
	pal []Color
	pos int
}

// NewCursor starts at position start, wrapped into the palette
// an empty palette falls back to Paired
func NewCursor(pal []Color, start int) *Cursor {
	if len(pal) == 0 {
		pal = Paired()
	}
	if start < 0 {
		start = 0
	}
	return &Cursor{pal: pal, pos: start % len(pal)}
}

// NextPair draws fill then line
func (c *Cursor) NextPair() ColorPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	fill := c.next()
	line := c.next()
	return ColorPair{Fill: fill, Line: line}
}

func (c *Cursor) next() Color {
	col := c.pal[c.pos]
	c.pos = (c.pos + 1) % len(c.pal)
	return col
}
