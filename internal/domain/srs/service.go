package srs

import "time"

// Service defines the interface for review scheduling operations.
type Service interface {
	// NextReview computes the values to persist after grading one card:
	// the new interval, the new ease factor, and the next due timestamp.
	NextReview(interval int, ease float64, correct bool, now time.Time) Review
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params Params
}

// NewDefaultService creates a scheduler service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: DefaultParams()}
}

// NewServiceWithParams creates a scheduler service with custom parameters.
func NewServiceWithParams(params Params) Service {
	return &defaultService{params: params}
}

// NextReview implements the Service interface.
func (s *defaultService) NextReview(
	interval int,
	ease float64,
	correct bool,
	now time.Time,
) Review {
	return schedule(interval, ease, correct, now, s.params)
}
