package config

import "sort"

var Presets = map[string]*Config{
	"klingon": DefaultConfig(),
	"matrix": {
		TailColor: "green", HeadColor: "white", Background: "black", Speed: "fast",
		TailLength: "4", Charset: "katakana", Curve: "exponential", FPS: 20, Flicker: DefaultFlicker,
	},
	"ember": {
		TailColor: "red", HeadColor: "light_yellow", Background: "#1a0500", Speed: "slow",
		TailLength: "6", Charset: "braille", Curve: "linear", FPS: 20, Flicker: 2 * DefaultFlicker,
	},
	"ice": {
		TailColor: "light_blue", HeadColor: "white", Background: "black", Speed: "slow",
		TailLength: "8", Charset: "piqad", Curve: "exponential", FPS: 20, Flicker: DefaultFlicker,
	},
	"mono": {
		TailColor: "gray", HeadColor: "white", Background: "black", Speed: "fast",
		TailLength: "3", Charset: "binary", Curve: "linear", FPS: 30, Flicker: 0,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
