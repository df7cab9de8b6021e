package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Dhamma", expected: "dhamma"},
		{name: "trims whitespace", input: "  dhamma \t", expected: "dhamma"},
		{name: "collapses inner runs", input: "loving   \t kindness", expected: "loving kindness"},
		{name: "empty input", input: "", expected: ""},
		{name: "whitespace only", input: " \t\n ", expected: ""},
		{name: "diacritics preserved", input: "Mettā", expected: "mettā"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "  Dhamma ", "a  B\tc", "mettā  karuṇā", "one two three"}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestIsCorrect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		user     string
		expected string
		correct  bool
	}{
		{name: "case and whitespace insensitive", user: "  Dhamma ", expected: "dhamma", correct: true},
		{name: "different words", user: "dhamma", expected: "Dhammas", correct: false},
		{name: "inner whitespace collapsed", user: "loving  kindness", expected: "Loving Kindness", correct: true},
		{name: "empty matches only empty", user: "", expected: "", correct: true},
		{name: "empty submission fails nonempty answer", user: "   ", expected: "dhamma", correct: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.correct, IsCorrect(tc.user, tc.expected))
		})
	}
}
