package domain

import "time"

// StudyCard is the session-scoped join of a review state with its item's
// text fields. It is constructed fresh when a study session loads and is
// never persisted as its own entity.
type StudyCard struct {
	ReviewStateID int64     `json:"review_state_id"`
	ItemID        int64     `json:"item_id"`
	Direction     Direction `json:"direction"`
	Pali          string    `json:"pali"`
	Meaning       string    `json:"meaning"`
	Type          ItemType  `json:"type"`
	Interval      int       `json:"interval"`
	Ease          float64   `json:"ease"`
	Due           time.Time `json:"due"`
}

// Prompt returns the text shown to the user for this card's direction.
func (c StudyCard) Prompt() string {
	if c.Direction == DirectionPaliToMeaning {
		return c.Pali
	}
	return c.Meaning
}

// Answer returns the text the user is expected to type for this card's
// direction.
func (c StudyCard) Answer() string {
	if c.Direction == DirectionPaliToMeaning {
		return c.Meaning
	}
	return c.Pali
}
