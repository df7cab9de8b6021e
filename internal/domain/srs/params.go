package srs

import "github.com/palime/palime-api/internal/domain"

// Params defines the configurable parameters of the review scheduler.
type Params struct {
	// FirstInterval is the interval in days assigned after the first
	// correct review of a card (or the first correct review after a miss).
	FirstInterval int

	// MaxInterval caps interval growth, in days. Without a cap a small
	// vocabulary with a high ease factor produces runaway intervals.
	MaxInterval int

	// EasePenalty is subtracted from the ease factor on a miss.
	EasePenalty float64

	// MinEase is the floor the ease factor can never drop below. A floor
	// above 1.0 keeps the multiplier from collapsing.
	MinEase float64
}

// DefaultParams returns the scheduler parameters used in production.
func DefaultParams() Params {
	return Params{
		FirstInterval: 1,
		MaxInterval:   30,
		EasePenalty:   0.2,
		MinEase:       domain.MinEase,
	}
}
