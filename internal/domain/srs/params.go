// Package srs implements the SM-2 spaced repetition algorithm that decides
// how a card's schedule evolves after each graded review. The package is
// pure computation: it performs no I/O and never touches storage, so it can
// be tested in complete isolation.
package srs

// Params defines all configurable parameters for the SM-2 algorithm.
type Params struct {
	// EaseFloor is the absolute minimum ease factor. The ease update clamps
	// to this floor and applies no upper cap.
	EaseFloor float64

	// FirstInterval is the interval, in days, assigned after the first
	// successful review of a card (and after any failure).
	FirstInterval int

	// SecondInterval is the interval, in days, assigned after the second
	// consecutive successful review.
	SecondInterval int

	// MatureThresholdDays is the interval length at or above which a card is
	// classified as "mature" in learner-facing statistics.
	MatureThresholdDays int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero-valued fields keep their defaults.
type ParamsConfig struct {
	EaseFloor           float64
	FirstInterval       int
	SecondInterval      int
	MatureThresholdDays int
}

// Default parameter values, matching the classic SM-2 constants.
const (
	DefaultEaseFloor           = 1.3
	DefaultFirstInterval       = 1
	DefaultSecondInterval      = 6
	DefaultMatureThresholdDays = 21
)

// NewDefaultParams creates a new Params instance with the standard SM-2
// values: ease floor 1.3, interval ladder 1 day then 6 days, and a 21-day
// maturity threshold.
func NewDefaultParams() *Params {
	return &Params{
		EaseFloor:           DefaultEaseFloor,
		FirstInterval:       DefaultFirstInterval,
		SecondInterval:      DefaultSecondInterval,
		MatureThresholdDays: DefaultMatureThresholdDays,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Any field left at its zero value falls back to the default.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.EaseFloor > 0 {
		params.EaseFloor = config.EaseFloor
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}
	if config.MatureThresholdDays > 0 {
		params.MatureThresholdDays = config.MatureThresholdDays
	}

	return params
}
