package domain

import (
	"errors"
	"strings"
	"time"
)

// Deck-specific validation errors
var (
	// ErrDeckNameEmpty is returned when a deck name is empty after trimming.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")

	// ErrDeckNameReserved is returned when a user-created deck tries to use
	// the reserved "All" name (in any case).
	ErrDeckNameReserved = errors.New(`deck name "All" is reserved`)

	// ErrDefaultDeckImmutable is returned when the system-owned "All" deck
	// would be renamed, deleted, or have members removed.
	ErrDefaultDeckImmutable = errors.New(`the "All" deck cannot be modified`)
)

// DefaultDeckID is the ID of the system-owned "All" deck seeded by the
// schema. It contains every item and cannot be renamed or deleted.
const DefaultDeckID int64 = 1

// DefaultDeckName is the reserved name of the system-owned deck.
const DefaultDeckName = "All"

// StudyDirection is a deck's preference for which direction study sessions
// drill.
type StudyDirection string

// Possible study direction preferences
const (
	StudyPaliFirst    StudyDirection = "pali_first"
	StudyMeaningFirst StudyDirection = "meaning_first"
	StudyRandom       StudyDirection = "random"
)

// IsValid reports whether s is a known study direction preference.
func (s StudyDirection) IsValid() bool {
	switch s {
	case StudyPaliFirst, StudyMeaningFirst, StudyRandom:
		return true
	default:
		return false
	}
}

// DirectionFilter maps the deck preference to a review-state direction
// filter. The second return value is false for StudyRandom, meaning both
// directions are eligible and no filter applies.
func (s StudyDirection) DirectionFilter() (Direction, bool) {
	switch s {
	case StudyPaliFirst:
		return DirectionPaliToMeaning, true
	case StudyMeaningFirst:
		return DirectionMeaningToPali, true
	default:
		return "", false
	}
}

// ParseStudyDirection parses a stored study direction, defaulting to
// StudyRandom for unknown or empty values.
func ParseStudyDirection(value string) StudyDirection {
	s := StudyDirection(value)
	if !s.IsValid() {
		return StudyRandom
	}
	return s
}

// Deck is a named, user-curated collection of items with a per-deck study
// direction preference. Items belong to decks many-to-many.
type Deck struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	StudyDirection StudyDirection `json:"study_direction"`
	CreatedAt      time.Time      `json:"created_at"`
}

// IsDefault reports whether the deck is the system-owned "All" deck.
func (d *Deck) IsDefault() bool {
	return d.ID == DefaultDeckID
}

// DeckWithCount is a deck together with its computed item count, as
// returned by list and detail queries.
type DeckWithCount struct {
	Deck
	ItemCount int `json:"item_count"`
}

// DeckMembership links one item to one deck.
type DeckMembership struct {
	DeckID int64 `json:"deck_id"`
	ItemID int64 `json:"item_id"`
}

// ValidateDeckName trims the candidate name and checks it against the deck
// naming rules. It returns the trimmed name on success. Name uniqueness is
// a store concern and is checked separately.
func ValidateDeckName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrDeckNameEmpty
	}
	if strings.EqualFold(trimmed, DefaultDeckName) {
		return "", ErrDeckNameReserved
	}
	return trimmed, nil
}
