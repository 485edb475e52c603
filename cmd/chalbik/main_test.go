package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/chalbik/internal/config"
	"github.com/san-kum/chalbik/internal/experiment"
	"github.com/san-kum/chalbik/internal/storage"
)

func parse(t *testing.T, args ...string) *config.Config {
	t.Helper()
	cmd := newRootCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := parse(t)
	if *cfg != *config.DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigFlags(t *testing.T) {
	cfg := parse(t, "-t", "green", "-d", "white", "-s", "slow", "-l", "3")
	if cfg.TailColor != "green" || cfg.HeadColor != "white" || cfg.Speed != "slow" || cfg.TailLength != "3" {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestLoadConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chalbik.yaml")
	if err := os.WriteFile(path, []byte("tail_color: blue\nhead_color: cyan\nfps: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHALBIK_HEAD_COLOR", "magenta")

	cfg := parse(t, "--preset", "matrix", "--config", path, "--fps", "15")

	if cfg.Charset != "katakana" {
		t.Errorf("expected preset charset, got %s", cfg.Charset)
	}
	if cfg.TailColor != "blue" {
		t.Errorf("expected config file over preset, got %s", cfg.TailColor)
	}
	if cfg.HeadColor != "magenta" {
		t.Errorf("expected env over config file, got %s", cfg.HeadColor)
	}
	if cfg.FPS != 15 {
		t.Errorf("expected flag over config file, got %d", cfg.FPS)
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--preset", "nope"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestFlagHelpListsOptions(t *testing.T) {
	flags := newRootCmd().PersistentFlags()
	if usage := flags.Lookup("charset").Usage; !strings.Contains(usage, "katakana") || !strings.Contains(usage, "piqad") {
		t.Errorf("expected charset names in help, got %q", usage)
	}
	for _, name := range []string{"tail-color", "head-color"} {
		if usage := flags.Lookup(name).Usage; !strings.Contains(usage, "light_blue") {
			t.Errorf("expected colour names in %s help, got %q", name, usage)
		}
	}
}

func TestPlotReport(t *testing.T) {
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	result := &experiment.Result{
		Samples: []experiment.Sample{
			{Frame: 0, Lit: 2, Active: 2, Took: 80 * time.Microsecond},
			{Frame: 1, Elapsed: 50 * time.Millisecond, Lit: 5, Active: 3, Took: 120 * time.Microsecond},
			{Frame: 2, Elapsed: 100 * time.Millisecond, Lit: 9, Active: 3, Took: 100 * time.Microsecond},
		},
		Metrics: map[string]float64{"compose_us": 100},
		Wall:    time.Millisecond,
	}
	id, err := st.Save(storage.ReportMetadata{Width: 10, Height: 5, Frames: 3, Speed: "fast"}, result)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := plotReport(&out, st, id); err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if !strings.Contains(out.String(), id) || !strings.Contains(out.String(), "compose time") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := plotReport(&out, st, "missing"); err == nil {
		t.Error("expected error for unknown report")
	}
}
