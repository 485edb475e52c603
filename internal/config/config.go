package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/chalbik/internal/palette"
	"github.com/san-kum/chalbik/internal/rain"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTailColor  = "red"
	DefaultHeadColor  = "yellow"
	DefaultBackground = "black"
	DefaultSpeed      = "fast"
	DefaultTailLength = "10"
	DefaultCharset    = "piqad"
	DefaultCurve      = "linear"
	DefaultFPS        = 20
	DefaultFlicker    = rain.DefaultFlicker

	MinFPS = 1
	MaxFPS = 60
)

// Config is the user-facing configuration. Values stay as written by the user
// until Resolve turns them into simulation settings.
type Config struct {
	TailColor  string        `yaml:"tail_color" env:"CHALBIK_TAIL_COLOR"`
	HeadColor  string        `yaml:"head_color" env:"CHALBIK_HEAD_COLOR"`
	Background string        `yaml:"background" env:"CHALBIK_BACKGROUND"`
	Speed      string        `yaml:"speed" env:"CHALBIK_SPEED"`
	TailLength string        `yaml:"tail_length" env:"CHALBIK_TAIL_LENGTH"`
	Charset    string        `yaml:"charset" env:"CHALBIK_CHARSET"`
	Curve      string        `yaml:"curve" env:"CHALBIK_CURVE"`
	FPS        int           `yaml:"fps" env:"CHALBIK_FPS"`
	Flicker    time.Duration `yaml:"flicker" env:"CHALBIK_FLICKER"`
	Seed       int64         `yaml:"seed" env:"CHALBIK_SEED"`
	Debug      bool          `yaml:"debug" env:"CHALBIK_DEBUG"`
}

func DefaultConfig() *Config {
	return &Config{
		TailColor:  DefaultTailColor,
		HeadColor:  DefaultHeadColor,
		Background: DefaultBackground,
		Speed:      DefaultSpeed,
		TailLength: DefaultTailLength,
		Charset:    DefaultCharset,
		Curve:      DefaultCurve,
		FPS:        DefaultFPS,
		Flicker:    DefaultFlicker,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Merge(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays the fields present in the yaml file at path.
func (c *Config) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolved is a Config turned into values the simulation and host consume.
type Resolved struct {
	Settings rain.Settings
	Catalog  *rain.Catalog
	Interval time.Duration
	Seed     int64
}

// Resolve validates the config. Bad colours, speeds, curves, lengths and
// frame rates fall back to defaults with a logged warning; only an unusable
// charset is an error.
func (c *Config) Resolve() (*Resolved, error) {
	s := rain.DefaultSettings()

	s.TailColor = resolveColor("tail colour", c.TailColor, DefaultTailColor)
	s.HeadColor = resolveColor("head colour", c.HeadColor, DefaultHeadColor)
	s.Background = resolveColor("background", c.Background, DefaultBackground)

	speed, err := rain.ParseSpeed(c.Speed)
	if err != nil {
		log.Printf("config: %v, using %s", err, DefaultSpeed)
	}
	s.Speed = speed

	curve, err := rain.ParseCurve(c.Curve)
	if err != nil {
		log.Printf("config: %v, using %s", err, DefaultCurve)
	}
	s.Curve = curve

	lifespan, err := ParseTailLength(c.TailLength)
	if err != nil {
		log.Printf("config: %v, using %ss", err, DefaultTailLength)
		lifespan = rain.DefaultTailLifespan
	}
	s.TailLifespan = lifespan

	s.Flicker = c.Flicker
	if s.Flicker < 0 {
		log.Printf("config: negative flicker %v, using %v", c.Flicker, DefaultFlicker)
		s.Flicker = DefaultFlicker
	}

	fps := c.FPS
	if fps < MinFPS || fps > MaxFPS {
		log.Printf("config: fps out of range (%d-%d): got %d, using %d", MinFPS, MaxFPS, fps, DefaultFPS)
		fps = DefaultFPS
	}

	catalog, err := rain.Charset(c.Charset)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", c.Charset, err)
	}

	return &Resolved{
		Settings: s,
		Catalog:  catalog,
		Interval: time.Second / time.Duration(fps),
		Seed:     c.Seed,
	}, nil
}

func resolveColor(what, name, fallback string) colorful.Color {
	c, ok := palette.Resolve(name, palette.MustLookup(fallback))
	if !ok {
		log.Printf("config: unknown %s %q, using %s", what, name, fallback)
	}
	return c
}

var errTailLength = errors.New("invalid tail length")

// ParseTailLength accepts whole or fractional seconds ("10", "2.5") or a Go
// duration ("1500ms"), up to one day either way.
func ParseTailLength(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(secs) || secs < 0 || secs > maxTailSeconds {
			return 0, fmt.Errorf("%w: %q", errTailLength, s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 || d > maxTailSeconds*time.Second {
		return 0, fmt.Errorf("%w: %q", errTailLength, s)
	}
	return d, nil
}

// Upper bound for tail lengths given in seconds.
const maxTailSeconds = 24 * 60 * 60
