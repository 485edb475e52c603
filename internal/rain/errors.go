package rain

import "errors"

// Domain errors for rain configuration.
var (
	// ErrEmptyCatalog indicates that filtering left no usable glyphs.
	ErrEmptyCatalog = errors.New("rain: glyph catalog is empty")

	// ErrInvalidRange indicates a code-point range whose upper bound is below its lower bound.
	ErrInvalidRange = errors.New("rain: invalid code-point range")

	// ErrInvalidSpeed indicates an unknown speed tier name.
	ErrInvalidSpeed = errors.New("rain: unknown speed tier")

	// ErrInvalidCurve indicates an unknown decay curve name.
	ErrInvalidCurve = errors.New("rain: unknown decay curve")
)
