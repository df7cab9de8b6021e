package study

import "math"

// Stats accumulates answered/correct counts for one session. Counters are
// purely additive; even the mark-as-correct override only bumps Correct
// upward, it never removes an answered entry.
type Stats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// RecordAnswer counts one graded answer.
func (s *Stats) RecordAnswer(correct bool) {
	s.Total++
	if correct {
		s.Correct++
	}
}

// markCorrect flips a previously recorded incorrect answer to correct.
func (s *Stats) markCorrect() {
	s.Correct++
}

// Accuracy returns the session accuracy as a rounded whole percentage.
// It returns 0 when nothing has been answered yet.
func (s Stats) Accuracy() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}
