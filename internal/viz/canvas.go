package viz

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/san-kum/chalbik/internal/rain"
)

// Canvas turns composed grids into terminal text for one colour profile.
// Consecutive cells sharing a colour share one escape sequence.
type Canvas struct {
	profile    termenv.Profile
	background colorful.Color
	buf        strings.Builder
}

func NewCanvas(profile termenv.Profile, background colorful.Color) *Canvas {
	return &Canvas{profile: profile, background: background}
}

// Render writes rows separated by newlines. Empty cells are spaces over the
// background colour. With the Ascii profile only glyphs are written.
func (c *Canvas) Render(g *rain.Grid) string {
	c.buf.Reset()
	if g.Width == 0 || g.Height == 0 {
		return ""
	}
	c.buf.Grow(g.Height * (g.Width*24 + 1))

	plain := c.profile == termenv.Ascii
	bg := c.sequence(c.background, true)

	for row := 0; row < g.Height; row++ {
		if row > 0 {
			c.buf.WriteByte('\n')
		}
		if !plain && bg != "" {
			c.buf.WriteString(bg)
		}
		current := ""
		for _, cell := range g.Row(row) {
			if cell.Empty() {
				c.buf.WriteByte(' ')
				continue
			}
			if !plain {
				if seq := c.sequence(cell.Color, false); seq != current {
					c.buf.WriteString(seq)
					current = seq
				}
			}
			c.buf.WriteRune(cell.Glyph)
		}
		if !plain && (current != "" || bg != "") {
			c.buf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
		}
	}
	return c.buf.String()
}

func (c *Canvas) sequence(col colorful.Color, bg bool) string {
	seq := c.profile.Color(col.Clamped().Hex()).Sequence(bg)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}
