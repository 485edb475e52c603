package experiment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/chalbik/internal/metrics"
	"github.com/san-kum/chalbik/internal/rain"
)

var ErrNotSetup = errors.New("experiment not setup")

// Config describes a headless run: Frames compositions of a Width×Height
// grid, with simulated time advancing by Interval per frame.
type Config struct {
	Width    int
	Height   int
	Frames   int
	Interval time.Duration
	Seed     int64
	Settings rain.Settings
	Catalog  *rain.Catalog
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("grid size must be positive: got %dx%d", c.Width, c.Height)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive: got %d", c.Frames)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive: got %v", c.Interval)
	}
	if c.Catalog == nil {
		return rain.ErrEmptyCatalog
	}
	return nil
}

// Sample is one frame's observation.
type Sample struct {
	Frame   int
	Elapsed time.Duration
	Lit     int
	Active  int
	Took    time.Duration
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
	Wall    time.Duration
}

type Experiment struct {
	cfg        Config
	compositor *rain.Compositor
	metrics    []metrics.Metric
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (e *Experiment) Setup(ms []metrics.Metric) error {
	if err := e.cfg.validate(); err != nil {
		return err
	}
	e.compositor = rain.NewCompositor(e.cfg.Catalog, e.randSource)
	e.metrics = ms
	for _, m := range e.metrics {
		m.Reset()
	}
	return nil
}

// Run composes every frame, checking ctx between frames.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.compositor == nil {
		return nil, ErrNotSetup
	}

	res := &Result{
		Samples: make([]Sample, 0, e.cfg.Frames),
		Metrics: make(map[string]float64, len(e.metrics)),
	}
	start := time.Now()
	for i := 0; i < e.cfg.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		elapsed := time.Duration(i) * e.cfg.Interval

		t0 := time.Now()
		g := e.compositor.Compose(e.cfg.Settings, elapsed, e.cfg.Width, e.cfg.Height)
		took := time.Since(t0)

		active := e.compositor.Tracker().ActiveCount()
		for _, m := range e.metrics {
			m.Observe(g, active, took)
		}
		res.Samples = append(res.Samples, Sample{
			Frame:   i,
			Elapsed: elapsed,
			Lit:     g.Lit(),
			Active:  active,
			Took:    took,
		})
	}
	res.Wall = time.Since(start)

	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
