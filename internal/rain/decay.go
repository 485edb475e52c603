package rain

import (
	"math"
	"time"
)

// expK sets the steepness of the exponential curve.
const expK = 4.0

var expFloor = math.Exp(-expK)

// Decay computes how bright a trail cell is, given how long ago the head
// passed through it.
type Decay struct {
	Lifespan time.Duration
	Curve    Curve
}

// Intensity is 1 at age zero, strictly decreasing, and exactly 0 from the
// lifespan onwards.
func (d Decay) Intensity(age time.Duration) float64 {
	if age <= 0 {
		return 1
	}
	if d.Lifespan <= 0 || age >= d.Lifespan {
		return 0
	}
	x := float64(age) / float64(d.Lifespan)
	switch d.Curve {
	case CurveExponential:
		return (math.Exp(-expK*x) - expFloor) / (1 - expFloor)
	default:
		return 1 - x
	}
}

// Cell returns the intensity of row in a column crossed by drops, and whether
// the row holds an active head. The brightest pass wins when trails overlap.
// Retired drops never report a head, even if the grid has grown past them.
func (d Decay) Cell(drops []Drop, row int, elapsed time.Duration) (float64, bool) {
	best := 0.0
	for i := range drops {
		drop := &drops[i]
		if row > drop.HeadRow {
			continue
		}
		if row == drop.HeadRow && !drop.Retired {
			return 1, true
		}
		if d.Lifespan <= 0 {
			continue
		}
		if v := d.Intensity(elapsed - drop.ReachedAt(row)); v > best {
			best = v
		}
	}
	return best, false
}
