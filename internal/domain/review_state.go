package domain

import (
	"errors"
	"time"
)

// ReviewState validation errors
var (
	// ErrInvalidDirection is returned when a direction is not one of the two
	// known study directions.
	ErrInvalidDirection = errors.New("invalid study direction")

	// ErrInvalidInterval is returned when an interval is negative.
	ErrInvalidInterval = errors.New("interval must be greater than or equal to 0")

	// ErrInvalidEase is returned when an ease factor is below the minimum.
	ErrInvalidEase = errors.New("ease factor must be at least 1.3")
)

// Scheduling defaults shared by the domain and the SRS scheduler.
const (
	// DefaultEase is the ease factor assigned to a brand-new review state.
	DefaultEase = 2.5

	// MinEase is the floor the ease factor can never drop below.
	MinEase = 1.3
)

// Direction identifies which of the two translation directions a review
// state drills: showing the Pali text and recalling the meaning, or the
// reverse.
type Direction string

// Possible study directions
const (
	DirectionPaliToMeaning Direction = "pali_to_meaning"
	DirectionMeaningToPali Direction = "meaning_to_pali"
)

// Directions lists both study directions in creation order.
var Directions = []Direction{DirectionPaliToMeaning, DirectionMeaningToPali}

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == DirectionPaliToMeaning || d == DirectionMeaningToPali
}

// ReviewState tracks the spaced-repetition memory model for one item in one
// direction. Interval is measured in whole days; interval 0 means the item
// has not yet been successfully reviewed (or was just reset by a miss).
// A suspended state is excluded from all card selection.
type ReviewState struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Direction Direction `json:"direction"`
	Interval  int       `json:"interval"`
	Ease      float64   `json:"ease"`
	Due       time.Time `json:"due"`
	Suspended bool      `json:"suspended"`
}

// NewReviewState creates the initial review state for an item and direction.
// New states are due immediately so fresh items show up in the next session.
func NewReviewState(itemID int64, direction Direction, now time.Time) *ReviewState {
	return &ReviewState{
		ItemID:    itemID,
		Direction: direction,
		Interval:  0,
		Ease:      DefaultEase,
		Due:       now,
		Suspended: false,
	}
}

// Validate checks that the review state's fields satisfy the domain rules.
func (r *ReviewState) Validate() error {
	if !r.Direction.IsValid() {
		return ErrInvalidDirection
	}
	if r.Interval < 0 {
		return ErrInvalidInterval
	}
	if r.Ease < MinEase {
		return ErrInvalidEase
	}
	return nil
}
