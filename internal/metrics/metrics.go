package metrics

import (
	"time"

	"github.com/san-kum/chalbik/internal/rain"
)

// Metric accumulates one number over a run of frames.
type Metric interface {
	Name() string
	Observe(g *rain.Grid, active int, took time.Duration)
	Value() float64
	Reset()
}

// Defaults returns the frame metrics reported by bench.
func Defaults() []Metric {
	return []Metric{
		NewLitCells(),
		NewActiveDrops(),
		NewComposeTime(),
		NewPeakComposeTime(),
		NewBudgetOverruns(Budget),
	}
}

// Budget is the per-frame time a composition must fit in at 20 fps.
const Budget = 50 * time.Millisecond

type LitCells struct {
	samples int
	fill    float64
}

func NewLitCells() *LitCells { return &LitCells{} }

func (m *LitCells) Name() string { return "lit_fraction" }

func (m *LitCells) Observe(g *rain.Grid, active int, took time.Duration) {
	m.samples++
	if n := g.Width * g.Height; n > 0 {
		m.fill += float64(g.Lit()) / float64(n)
	}
}

func (m *LitCells) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.fill / float64(m.samples)
}

func (m *LitCells) Reset() { *m = LitCells{} }

type ActiveDrops struct {
	samples int
	total   int
}

func NewActiveDrops() *ActiveDrops { return &ActiveDrops{} }

func (m *ActiveDrops) Name() string { return "active_drops" }

func (m *ActiveDrops) Observe(g *rain.Grid, active int, took time.Duration) {
	m.samples++
	m.total += active
}

func (m *ActiveDrops) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *ActiveDrops) Reset() { *m = ActiveDrops{} }

// ComposeTime is the mean composition time in microseconds.
type ComposeTime struct {
	samples int
	total   time.Duration
}

func NewComposeTime() *ComposeTime { return &ComposeTime{} }

func (m *ComposeTime) Name() string { return "compose_us" }

func (m *ComposeTime) Observe(g *rain.Grid, active int, took time.Duration) {
	m.samples++
	m.total += took
}

func (m *ComposeTime) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total.Microseconds()) / float64(m.samples)
}

func (m *ComposeTime) Reset() { *m = ComposeTime{} }

type PeakComposeTime struct {
	peak time.Duration
}

func NewPeakComposeTime() *PeakComposeTime { return &PeakComposeTime{} }

func (m *PeakComposeTime) Name() string { return "compose_peak_us" }

func (m *PeakComposeTime) Observe(g *rain.Grid, active int, took time.Duration) {
	m.peak = max(m.peak, took)
}

func (m *PeakComposeTime) Value() float64 { return float64(m.peak.Microseconds()) }

func (m *PeakComposeTime) Reset() { m.peak = 0 }

// BudgetOverruns is the fraction of frames slower than the budget.
type BudgetOverruns struct {
	budget  time.Duration
	samples int
	over    int
}

func NewBudgetOverruns(budget time.Duration) *BudgetOverruns {
	return &BudgetOverruns{budget: budget}
}

func (m *BudgetOverruns) Name() string { return "budget_overruns" }

func (m *BudgetOverruns) Observe(g *rain.Grid, active int, took time.Duration) {
	m.samples++
	if took > m.budget {
		m.over++
	}
}

func (m *BudgetOverruns) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.over) / float64(m.samples)
}

func (m *BudgetOverruns) Reset() {
	m.samples = 0
	m.over = 0
}
