package rain

import (
	"math"
	"time"
)

// MaxHeadRow caps head positions so very long sessions saturate instead of wrapping.
const MaxHeadRow = math.MaxInt32

// Drop is one falling trail in one column.
type Drop struct {
	Column      int
	SpawnTime   time.Duration
	SpeedFactor float64 // rows per second
	HeadRow     int
	Retired     bool // head has left the grid; only the trail remains
}

// NewDrop starts a drop at row zero.
func NewDrop(column int, spawn time.Duration, speed float64) Drop {
	return Drop{Column: column, SpawnTime: spawn, SpeedFactor: speed}
}

// HeadAt returns the head row at the given elapsed time.
func (d Drop) HeadAt(elapsed time.Duration) int {
	if elapsed <= d.SpawnTime || d.SpeedFactor <= 0 {
		return 0
	}
	rows := (elapsed - d.SpawnTime).Seconds() * d.SpeedFactor
	if rows >= MaxHeadRow {
		return MaxHeadRow
	}
	return int(rows)
}

// ReachedAt returns the elapsed instant at which the head entered row.
func (d Drop) ReachedAt(row int) time.Duration {
	if d.SpeedFactor <= 0 {
		return d.SpawnTime
	}
	return d.SpawnTime + time.Duration(float64(row)/d.SpeedFactor*float64(time.Second))
}

// TrailRows is the number of rows the head covers during one lifespan.
func (d Drop) TrailRows(lifespan time.Duration) int {
	if lifespan <= 0 || d.SpeedFactor <= 0 {
		return 0
	}
	rows := math.Ceil(lifespan.Seconds() * d.SpeedFactor)
	if rows >= MaxHeadRow {
		return MaxHeadRow
	}
	return int(rows)
}

type column struct {
	active  *Drop
	retired []Drop
}

func (c *column) appendDrops(dst []Drop) []Drop {
	dst = append(dst, c.retired...)
	if c.active != nil {
		dst = append(dst, *c.active)
	}
	return dst
}

// Tracker owns, per column, the active drop (if any) and the retired drops
// whose trails are still fading.
type Tracker struct {
	columns []column
}

// NewTracker returns a tracker with width empty columns.
func NewTracker(width int) *Tracker {
	t := &Tracker{}
	t.Resize(width)
	return t
}

// Width returns the number of tracked columns.
func (t *Tracker) Width() int { return len(t.columns) }

// Resize keeps the state of surviving columns and adds empty ones as needed.
func (t *Tracker) Resize(width int) {
	if width < 0 {
		width = 0
	}
	if width <= len(t.columns) {
		for i := width; i < len(t.columns); i++ {
			t.columns[i] = column{}
		}
		t.columns = t.columns[:width]
		return
	}
	t.columns = append(t.columns, make([]column, width-len(t.columns))...)
}

// HasActive reports whether col currently has a head inside the grid.
func (t *Tracker) HasActive(col int) bool {
	return col >= 0 && col < len(t.columns) && t.columns[col].active != nil
}

// Spawn installs a new drop in col unless one is already active there.
func (t *Tracker) Spawn(col int, elapsed time.Duration, speed float64) bool {
	if col < 0 || col >= len(t.columns) || t.columns[col].active != nil {
		return false
	}
	d := NewDrop(col, elapsed, speed)
	t.columns[col].active = &d
	return true
}

// Advance recomputes head rows for every column.
func (t *Tracker) Advance(elapsed time.Duration, height int, lifespan time.Duration) {
	for col := range t.columns {
		t.AdvanceColumn(col, elapsed, height, lifespan)
	}
}

// AdvanceColumn moves col's drops to elapsed. A head that leaves the grid is
// retired; retired drops are evicted once the last row they lit has decayed.
// A newly retired drop crossed every row after the older retired ones, so it
// replaces them and a column never holds more than two drops.
func (t *Tracker) AdvanceColumn(col int, elapsed time.Duration, height int, lifespan time.Duration) {
	if col < 0 || col >= len(t.columns) {
		return
	}
	c := &t.columns[col]
	if d := c.active; d != nil {
		d.HeadRow = max(d.HeadRow, d.HeadAt(elapsed))
		if d.HeadRow >= height {
			d.Retired = true
			c.retired = append(c.retired[:0], *d)
			c.active = nil
		}
	}
	kept := c.retired[:0]
	for _, d := range c.retired {
		d.HeadRow = max(d.HeadRow, d.HeadAt(elapsed))
		if d.HeadRow >= height+d.TrailRows(lifespan) {
			continue
		}
		kept = append(kept, d)
	}
	c.retired = kept
}

// Active returns col's active drop.
func (t *Tracker) Active(col int) (Drop, bool) {
	if !t.HasActive(col) {
		return Drop{}, false
	}
	return *t.columns[col].active, true
}

// Drops returns every tracked drop of col, oldest first, active drop last.
func (t *Tracker) Drops(col int) []Drop {
	if col < 0 || col >= len(t.columns) {
		return nil
	}
	return t.columns[col].appendDrops(nil)
}

// ActiveCount returns the number of columns with an active head.
func (t *Tracker) ActiveCount() int {
	n := 0
	for i := range t.columns {
		if t.columns[i].active != nil {
			n++
		}
	}
	return n
}
