package rain

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Cell is one grid position. The zero Cell is empty background.
type Cell struct {
	Glyph     rune
	Color     colorful.Color
	Intensity float64
	Head      bool
}

// Empty reports whether the cell shows nothing.
func (c Cell) Empty() bool { return c.Glyph == 0 }

// Grid is a row-major frame of cells.
type Grid struct {
	Width, Height int
	cells         []Cell
}

// NewGrid allocates an empty grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.resize(width, height)
	return g
}

func (g *Grid) resize(width, height int) {
	g.Width, g.Height = max(width, 0), max(height, 0)
	n := g.Width * g.Height
	if cap(g.cells) < n {
		g.cells = make([]Cell, n)
		return
	}
	g.cells = g.cells[:n]
	clear(g.cells)
}

// At returns the cell at (col, row); out-of-range positions are empty.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || col >= g.Width || row < 0 || row >= g.Height {
		return Cell{}
	}
	return g.cells[row*g.Width+col]
}

// Row returns the cells of one row. The slice aliases the grid.
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= g.Height {
		return nil
	}
	return g.cells[row*g.Width : (row+1)*g.Width]
}

// Lit counts non-empty cells.
func (g *Grid) Lit() int {
	n := 0
	for i := range g.cells {
		if !g.cells[i].Empty() {
			n++
		}
	}
	return n
}

type glyphSlot struct {
	glyph rune
	until time.Duration
}

// Compositor turns elapsed time into frames. It owns the drop tracker and a
// per-cell glyph buffer used for flicker.
type Compositor struct {
	catalog *Catalog
	rng     Source
	tracker *Tracker
	grid    *Grid
	glyphs  []glyphSlot
	scratch []Drop
}

// NewCompositor panics on a nil or empty catalog; catalogs are validated when built.
func NewCompositor(catalog *Catalog, rng Source) *Compositor {
	if catalog == nil || catalog.Len() == 0 {
		panic(ErrEmptyCatalog)
	}
	return &Compositor{
		catalog: catalog,
		rng:     rng,
		tracker: NewTracker(0),
		grid:    NewGrid(0, 0),
	}
}

// Catalog returns the glyph catalog in use.
func (c *Compositor) Catalog() *Catalog { return c.catalog }

// Tracker exposes the drop bookkeeping for inspection.
func (c *Compositor) Tracker() *Tracker { return c.tracker }

// Compose renders the frame at elapsed for a width×height grid. The returned
// grid is reused by the next call.
func (c *Compositor) Compose(s Settings, elapsed time.Duration, width, height int) *Grid {
	c.resize(width, height)
	width, height = c.grid.Width, c.grid.Height

	spawner := NewSpawner(s.Speed)
	decay := s.Decay()
	speed := s.Speed.RowsPerSecond()

	for col := 0; col < width; col++ {
		if spawner.ShouldSpawn(c.tracker.HasActive(col), c.rng) {
			c.tracker.Spawn(col, elapsed, speed)
		}
		c.tracker.AdvanceColumn(col, elapsed, height, s.TailLifespan)
		c.scratch = c.tracker.columns[col].appendDrops(c.scratch[:0])

		for row := 0; row < height; row++ {
			idx := row*width + col
			if len(c.scratch) == 0 {
				c.glyphs[idx].glyph = 0
				continue
			}
			intensity, head := decay.Cell(c.scratch, row, elapsed)
			if intensity <= 0 {
				c.glyphs[idx].glyph = 0
				continue
			}
			c.grid.cells[idx] = Cell{
				Glyph:     c.glyph(idx, elapsed, s.Flicker),
				Color:     s.Shade(intensity, head),
				Intensity: intensity,
				Head:      head,
			}
		}
	}
	return c.grid
}

func (c *Compositor) resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width != c.grid.Width || height != c.grid.Height {
		c.glyphs = make([]glyphSlot, width*height)
		c.tracker.Resize(width)
	}
	c.grid.resize(width, height)
}

// glyph keeps a cell's glyph until its deadline, then picks a new one.
func (c *Compositor) glyph(idx int, elapsed, flicker time.Duration) rune {
	slot := &c.glyphs[idx]
	if slot.glyph != 0 && (flicker <= 0 || elapsed < slot.until) {
		return slot.glyph
	}
	slot.glyph = c.catalog.Pick(c.rng)
	if flicker > 0 {
		slot.until = elapsed + flicker/2 + time.Duration(c.rng.Float64()*float64(flicker))
	}
	return slot.glyph
}
