// Package study implements the in-memory study session: answer grading,
// the card queue state machine, and running session statistics. Nothing in
// this package touches persistence; recording graded reviews against the
// store is the service layer's job.
package study

import "strings"

// Normalize prepares answer text for comparison: it lower-cases the input,
// trims leading and trailing whitespace, and collapses any run of
// whitespace to a single space. No locale-aware folding and no diacritic
// stripping is applied, so "mettā" and "metta" remain distinct.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// IsCorrect reports whether the user's answer matches the expected answer
// after normalization. An empty submission only matches an empty expected
// answer; there is no partial-credit scoring.
func IsCorrect(userAnswer, expectedAnswer string) bool {
	return Normalize(userAnswer) == Normalize(expectedAnswer)
}
