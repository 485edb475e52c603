package rain

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Speed is the global speed tier.
type Speed int

const (
	SpeedSlow Speed = iota
	SpeedFast
)

// ParseSpeed resolves "slow" or "fast".
func ParseSpeed(s string) (Speed, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return SpeedSlow, nil
	case "fast":
		return SpeedFast, nil
	}
	return SpeedFast, fmt.Errorf("%w: %q", ErrInvalidSpeed, s)
}

func (s Speed) String() string {
	if s == SpeedSlow {
		return "slow"
	}
	return "fast"
}

// RowsPerSecond is the speed factor assigned to drops spawned at this tier.
func (s Speed) RowsPerSecond() float64 {
	if s == SpeedSlow {
		return 8
	}
	return 20
}

// SpawnChance is the per-frame probability that an idle column starts a drop.
// The slow tier spawns less so the screen stays sparse.
func (s Speed) SpawnChance() float64 {
	if s == SpeedSlow {
		return 0.01
	}
	return 0.03
}

// Curve selects the trail fade shape.
type Curve int

const (
	CurveLinear Curve = iota
	CurveExponential
)

// ParseCurve resolves "linear" or "exponential".
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return CurveLinear, nil
	case "exponential", "exp":
		return CurveExponential, nil
	}
	return CurveLinear, fmt.Errorf("%w: %q", ErrInvalidCurve, s)
}

func (c Curve) String() string {
	if c == CurveExponential {
		return "exponential"
	}
	return "linear"
}

// Settings is the per-frame configuration handed to Compose.
type Settings struct {
	HeadColor    colorful.Color
	TailColor    colorful.Color
	Background   colorful.Color
	TailLifespan time.Duration
	Speed        Speed
	Curve        Curve
	// Flicker is the mean interval between glyph changes of a lit cell.
	// Zero keeps a glyph for as long as the cell stays lit.
	Flicker time.Duration
}

const (
	DefaultTailLifespan = 10 * time.Second
	DefaultFlicker      = 150 * time.Millisecond
)

// ANSI yellow and red (xterm #cdcd00, #cd0000), as the named colours resolve.
var (
	defaultHead = colorful.Color{R: 0xcd / 255.0, G: 0xcd / 255.0, B: 0}
	defaultTail = colorful.Color{R: 0xcd / 255.0, G: 0, B: 0}
)

// DefaultSettings mirrors the command-line defaults: red trail, yellow head,
// fast tier, ten second lifespan.
func DefaultSettings() Settings {
	return Settings{
		HeadColor:    defaultHead,
		TailColor:    defaultTail,
		Background:   colorful.Color{},
		TailLifespan: DefaultTailLifespan,
		Speed:        SpeedFast,
		Curve:        CurveLinear,
		Flicker:      DefaultFlicker,
	}
}

// Decay returns the trail model for these settings.
func (s Settings) Decay() Decay {
	return Decay{Lifespan: s.TailLifespan, Curve: s.Curve}
}

// Shade maps an intensity to a display colour. Heads use the head colour;
// trail cells blend from the background to the tail colour.
func (s Settings) Shade(intensity float64, head bool) colorful.Color {
	if head {
		return s.HeadColor
	}
	return s.Background.BlendRgb(s.TailColor, clamp01(intensity)).Clamped()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
