package rain

import (
	"errors"
	"testing"
)

type fixedSource struct {
	float float64
	next  int
}

func (f *fixedSource) Float64() float64 { return f.float }

func (f *fixedSource) Intn(n int) int {
	v := f.next % n
	f.next++
	return v
}

func TestPIqaDCatalog(t *testing.T) {
	c := PIqaD()

	// 48 code points, minus 6 and 4 unassigned offsets.
	if c.Len() != 38 {
		t.Fatalf("expected 38 glyphs, got %d", c.Len())
	}

	for _, r := range c.Glyphs() {
		off := r - piqadFirst
		if (off >= 0x1A && off <= 0x1F) || (off >= 0x2A && off <= 0x2D) {
			t.Errorf("glyph %U is inside an excluded span", r)
		}
	}

	tests := []struct {
		r    rune
		want bool
	}{
		{0xF8D0, true},
		{0xF8E9, true},
		{0xF8EA, false},
		{0xF8EF, false},
		{0xF8F0, true},
		{0xF8FA, false},
		{0xF8FD, false},
		{0xF8FE, true},
		{0xF8FF, true},
	}
	for _, tt := range tests {
		if got := c.Contains(tt.r); got != tt.want {
			t.Errorf("Contains(%U) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestNewCatalogErrors(t *testing.T) {
	if _, err := NewCatalog(0x42, 0x41); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := NewCatalog(0x41, 0x42, Span{0, 1}); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("expected ErrEmptyCatalog, got %v", err)
	}
	if _, err := CatalogFromString("  \t\n"); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("expected ErrEmptyCatalog for blank string, got %v", err)
	}
}

func TestNewCatalogSkipsSurrogates(t *testing.T) {
	c, err := NewCatalog(0xD7FF, 0xE000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 glyphs around the surrogate block, got %d", c.Len())
	}
}

func TestCatalogFromStringDedupes(t *testing.T) {
	c, err := CatalogFromString("aab ba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(c.Glyphs())
	if got != "ab" {
		t.Errorf("expected \"ab\", got %q", got)
	}
}

func TestCharset(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"piqad", 38},
		{"PIQAD", 38},
		{"binary", 2},
		{"hex", 16},
		{"katakana", 56},
		{"braille", 255},
		{"ascii", 62},
		{"xyz", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Charset(tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Len() != tt.want {
				t.Errorf("expected %d glyphs, got %d", tt.want, c.Len())
			}
		})
	}
}

func TestCatalogPick(t *testing.T) {
	c, _ := CatalogFromString("abc")
	src := &fixedSource{}
	var got []rune
	for i := 0; i < 4; i++ {
		got = append(got, c.Pick(src))
	}
	if string(got) != "abca" {
		t.Errorf("expected picks \"abca\", got %q", string(got))
	}
}

func TestCharsetNames(t *testing.T) {
	names := CharsetNames()
	want := []string{"ascii", "binary", "braille", "hex", "katakana", "piqad"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i, name := range names {
		if name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], name)
		}
		if _, err := Charset(name); err != nil {
			t.Errorf("charset %s does not build: %v", name, err)
		}
	}
}
