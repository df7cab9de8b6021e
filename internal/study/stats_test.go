package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsAccuracy(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		total    int
		correct  int
		expected int
	}{
		{name: "no answers yet", total: 0, correct: 0, expected: 0},
		{name: "eight of ten", total: 10, correct: 8, expected: 80},
		{name: "two of three rounds up", total: 3, correct: 2, expected: 67},
		{name: "one of three rounds down", total: 3, correct: 1, expected: 33},
		{name: "all correct", total: 4, correct: 4, expected: 100},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			stats := Stats{Total: tc.total, Correct: tc.correct}
			assert.Equal(t, tc.expected, stats.Accuracy())
		})
	}
}

func TestStatsRecordAnswer(t *testing.T) {
	t.Parallel()

	var stats Stats
	stats.RecordAnswer(true)
	stats.RecordAnswer(false)
	stats.RecordAnswer(true)
	assert.Equal(t, Stats{Total: 3, Correct: 2}, stats)

	stats.markCorrect()
	assert.Equal(t, Stats{Total: 3, Correct: 3}, stats, "override bumps correct only")
}
