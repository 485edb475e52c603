package rain

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Source is the randomness consumed by the simulation. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Span is an inclusive range of offsets relative to a catalog's first code point.
type Span struct {
	Lo, Hi rune
}

func (s Span) contains(off rune) bool { return off >= s.Lo && off <= s.Hi }

// Catalog is an ordered, deduplicated set of glyphs. It is immutable once built.
type Catalog struct {
	glyphs []rune
	index  map[rune]struct{}
}

// NewCatalog collects the valid runes of the inclusive range [lo, hi], skipping
// every rune whose offset from lo falls inside one of the excluded spans.
func NewCatalog(lo, hi rune, exclude ...Span) (*Catalog, error) {
	if hi < lo {
		return nil, fmt.Errorf("%w: %#x > %#x", ErrInvalidRange, lo, hi)
	}
	c := &Catalog{index: make(map[rune]struct{})}
	for r := lo; r <= hi; r++ {
		off := r - lo
		skip := false
		for _, s := range exclude {
			if s.contains(off) {
				skip = true
				break
			}
		}
		if !skip {
			c.add(r)
		}
	}
	if len(c.glyphs) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// CatalogFromString builds a catalog from literal characters, keeping the
// first occurrence of each and dropping whitespace and control runes.
func CatalogFromString(s string) (*Catalog, error) {
	c := &Catalog{index: make(map[rune]struct{})}
	for _, r := range s {
		if r == utf8.RuneError || r < 0x20 || r == 0x7f || r == ' ' {
			continue
		}
		c.add(r)
	}
	if len(c.glyphs) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

func (c *Catalog) add(r rune) {
	if !utf8.ValidRune(r) {
		return
	}
	if _, dup := c.index[r]; dup {
		return
	}
	c.index[r] = struct{}{}
	c.glyphs = append(c.glyphs, r)
}

// Len returns the number of glyphs.
func (c *Catalog) Len() int { return len(c.glyphs) }

// Glyphs returns a copy of the glyphs in catalog order.
func (c *Catalog) Glyphs() []rune {
	out := make([]rune, len(c.glyphs))
	copy(out, c.glyphs)
	return out
}

// Contains reports whether r is part of the catalog.
func (c *Catalog) Contains(r rune) bool {
	_, ok := c.index[r]
	return ok
}

// Pick returns a uniformly chosen glyph.
func (c *Catalog) Pick(rng Source) rune {
	return c.glyphs[rng.Intn(len(c.glyphs))]
}

// pIqaD block in the ConScript private use area. Offsets 0x1A-0x1F and
// 0x2A-0x2D are unassigned and render as tofu on most fonts.
const (
	piqadFirst rune = 0xF8D0
	piqadLast  rune = 0xF8FF
)

var piqadGaps = []Span{{0x1A, 0x1F}, {0x2A, 0x2D}}

// PIqaD returns the default catalog: the 38 assigned Klingon glyphs.
func PIqaD() *Catalog {
	c, err := NewCatalog(piqadFirst, piqadLast, piqadGaps...)
	if err != nil {
		panic(err)
	}
	return c
}

var charsets = map[string]func() (*Catalog, error){
	"piqad":    func() (*Catalog, error) { return NewCatalog(piqadFirst, piqadLast, piqadGaps...) },
	"katakana": func() (*Catalog, error) { return NewCatalog(0xFF66, 0xFF9D) },
	"braille":  func() (*Catalog, error) { return NewCatalog(0x2801, 0x28FF) },
	"binary":   func() (*Catalog, error) { return CatalogFromString("01") },
	"hex":      func() (*Catalog, error) { return CatalogFromString("0123456789ABCDEF") },
	"ascii": func() (*Catalog, error) {
		return CatalogFromString("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
	},
}

// Charset resolves a named charset. Unknown names are taken as a literal list
// of characters.
func Charset(name string) (*Catalog, error) {
	if build, ok := charsets[strings.ToLower(name)]; ok {
		return build()
	}
	return CatalogFromString(name)
}

// CharsetNames lists the built-in charsets in sorted order.
func CharsetNames() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
