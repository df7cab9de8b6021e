// Package srs implements the review scheduler: a minimal two-parameter
// ease-based spaced-repetition model. It is similar in spirit to SM-2 but
// deliberately simplified: the only grading signal is a binary
// correct/incorrect verdict, and interval growth is capped.
package srs

import (
	"math"
	"time"
)

// Review is the scheduler's output for a single graded answer: the values
// to persist back onto the review state.
type Review struct {
	Interval int
	Ease     float64
	Due      time.Time
}

// schedule computes the next review values from the current interval and
// ease factor.
//
// On a correct answer the interval grows multiplicatively: floor(interval
// * ease), starting from FirstInterval when the interval is 0, and capped
// at MaxInterval. The ease factor is unchanged. On a miss the interval
// resets to 0, the ease factor drops by EasePenalty (floored at MinEase),
// and the card is immediately due again.
//
// No ease ceiling is applied: with binary grading the ease factor never
// grows, so correct answers cannot inflate it.
func schedule(interval int, ease float64, correct bool, now time.Time, params Params) Review {
	if !correct {
		newEase := ease - params.EasePenalty
		if newEase < params.MinEase {
			newEase = params.MinEase
		}
		return Review{
			Interval: 0,
			Ease:     newEase,
			Due:      now,
		}
	}

	newInterval := params.FirstInterval
	if interval > 0 {
		newInterval = int(math.Floor(float64(interval) * ease))
	}
	if newInterval > params.MaxInterval {
		newInterval = params.MaxInterval
	}

	return Review{
		Interval: newInterval,
		Ease:     ease,
		Due:      now.AddDate(0, 0, newInterval),
	}
}
