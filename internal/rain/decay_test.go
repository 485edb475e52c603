package rain

import (
	"math"
	"testing"
	"time"
)

func TestDecayIntensityBounds(t *testing.T) {
	for _, curve := range []Curve{CurveLinear, CurveExponential} {
		t.Run(curve.String(), func(t *testing.T) {
			d := Decay{Lifespan: 10 * time.Second, Curve: curve}

			if got := d.Intensity(0); got != 1 {
				t.Errorf("expected 1 at age 0, got %f", got)
			}
			if got := d.Intensity(10 * time.Second); got != 0 {
				t.Errorf("expected 0 at lifespan, got %f", got)
			}
			if got := d.Intensity(time.Minute); got != 0 {
				t.Errorf("expected 0 past lifespan, got %f", got)
			}

			prev := 1.0
			for ms := 100; ms < 10000; ms += 100 {
				v := d.Intensity(time.Duration(ms) * time.Millisecond)
				if v >= prev {
					t.Fatalf("intensity not strictly decreasing at %dms: %f >= %f", ms, v, prev)
				}
				if v <= 0 || v >= 1 {
					t.Fatalf("intensity out of (0,1) at %dms: %f", ms, v)
				}
				prev = v
			}
		})
	}
}

func TestDecayLinearMidpoint(t *testing.T) {
	d := Decay{Lifespan: 10 * time.Second}
	if got := d.Intensity(5 * time.Second); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected 0.5 at half life, got %f", got)
	}
}

func TestDecayZeroLifespan(t *testing.T) {
	d := Decay{}
	if d.Intensity(0) != 1 || d.Intensity(time.Nanosecond) != 0 {
		t.Error("expected a zero lifespan to be a step at age 0")
	}

	drop := NewDrop(0, 0, 1)
	drop.HeadRow = drop.HeadAt(5 * time.Second)
	for row := 0; row < 10; row++ {
		v, head := d.Cell([]Drop{drop}, row, 5*time.Second)
		if row == 5 {
			if v != 1 || !head {
				t.Errorf("expected lit head at row 5, got %f head=%v", v, head)
			}
			continue
		}
		if v != 0 {
			t.Errorf("expected row %d dark with zero lifespan, got %f", row, v)
		}
	}
}

func TestDecayCell(t *testing.T) {
	d := Decay{Lifespan: 10 * time.Second}
	drop := NewDrop(0, 0, 1)
	drop.HeadRow = drop.HeadAt(5 * time.Second)

	tests := []struct {
		row      int
		want     float64
		wantHead bool
	}{
		{5, 1, true},
		{3, 0.8, false},
		{0, 0.5, false},
		{6, 0, false},
	}
	for _, tt := range tests {
		v, head := d.Cell([]Drop{drop}, tt.row, 5*time.Second)
		if math.Abs(v-tt.want) > 1e-9 || head != tt.wantHead {
			t.Errorf("row %d: got (%f, %v), want (%f, %v)", tt.row, v, head, tt.want, tt.wantHead)
		}
	}
}

func TestDecayCellBrightestPassWins(t *testing.T) {
	d := Decay{Lifespan: 10 * time.Second}
	old := NewDrop(0, 0, 1)
	old.HeadRow = 20
	fresh := NewDrop(0, 8*time.Second, 1)
	fresh.HeadRow = 2

	// Row 1: old pass at 1s (age 9s), fresh pass at 9s (age 1s).
	v, _ := d.Cell([]Drop{old, fresh}, 1, 10*time.Second)
	if math.Abs(v-0.9) > 1e-9 {
		t.Errorf("expected the fresher pass to win, got %f", v)
	}
}

func TestDecayCellRetiredHasNoHead(t *testing.T) {
	d := Decay{Lifespan: 10 * time.Second}
	drop := NewDrop(0, 0, 1)
	drop.HeadRow = 5
	drop.Retired = true

	v, head := d.Cell([]Drop{drop}, 5, 5*time.Second)
	if head {
		t.Error("expected retired drop not to report a head")
	}
	if v != 1 {
		t.Errorf("expected full trail intensity at the last row, got %f", v)
	}
}

func TestSingleDropScenario(t *testing.T) {
	const height = 40
	lifespan := 10 * time.Second
	d := Decay{Lifespan: lifespan}
	tr := NewTracker(1)
	tr.Spawn(0, 0, 1)

	tr.Advance(5*time.Second, height, lifespan)
	drop, ok := tr.Active(0)
	if !ok || drop.HeadRow != 5 {
		t.Fatalf("expected head row 5 at 5s, got %+v", drop)
	}

	tr.Advance(15*time.Second, height, lifespan)
	v, head := d.Cell(tr.Drops(0), 5, 15*time.Second)
	if v != 0 || head {
		t.Errorf("expected row 5 fully decayed at 15s, got %f head=%v", v, head)
	}
	if v, _ := d.Cell(tr.Drops(0), 6, 15*time.Second); v <= 0 {
		t.Errorf("expected row 6 still visible at 15s, got %f", v)
	}
}

func TestSettingsShade(t *testing.T) {
	s := DefaultSettings()

	if got := s.Shade(0.3, true); got != s.HeadColor {
		t.Errorf("expected head colour, got %v", got)
	}
	if got := s.Shade(1, false); !got.AlmostEqualRgb(s.TailColor) {
		t.Errorf("expected tail colour at full intensity, got %v", got)
	}
	if got := s.Shade(0, false); !got.AlmostEqualRgb(s.Background) {
		t.Errorf("expected background at zero intensity, got %v", got)
	}
	if got := s.Shade(0.5, false); math.Abs(got.R-0.5) > 1e-9 {
		t.Errorf("expected half-red blend, got %v", got)
	}
}

func TestParseSpeedAndCurve(t *testing.T) {
	if s, err := ParseSpeed("Slow"); err != nil || s != SpeedSlow {
		t.Errorf("ParseSpeed(Slow) = %v, %v", s, err)
	}
	if _, err := ParseSpeed("warp"); err == nil {
		t.Error("expected error for unknown speed")
	}
	if SpeedSlow.SpawnChance() >= SpeedFast.SpawnChance() {
		t.Error("expected the slow tier to spawn less often")
	}
	if c, err := ParseCurve("exp"); err != nil || c != CurveExponential {
		t.Errorf("ParseCurve(exp) = %v, %v", c, err)
	}
	if _, err := ParseCurve("cubic"); err == nil {
		t.Error("expected error for unknown curve")
	}
}
