package api

// Request DTOs. Responses reuse the domain and service types directly;
// their JSON tags are the wire format.

// CreateItemRequest is the request body for creating a vocabulary item.
type CreateItemRequest struct {
	Type    string  `json:"type"    validate:"required,oneof=word prefix suffix root particle"`
	Pali    string  `json:"pali"    validate:"required"`
	Meaning string  `json:"meaning" validate:"required"`
	Notes   string  `json:"notes"`
	DeckIDs []int64 `json:"deck_ids" validate:"omitempty,dive,gt=0"`
}

// UpdateItemRequest is the request body for editing an item's fields.
type UpdateItemRequest struct {
	Type    string `json:"type"    validate:"required,oneof=word prefix suffix root particle"`
	Pali    string `json:"pali"    validate:"required"`
	Meaning string `json:"meaning" validate:"required"`
	Notes   string `json:"notes"`
}

// UpdateItemDecksRequest is the request body for replacing an item's deck
// memberships. The default deck is always retained server-side.
type UpdateItemDecksRequest struct {
	DeckIDs []int64 `json:"deck_ids" validate:"omitempty,dive,gt=0"`
}

// CreateDeckRequest is the request body for creating a deck.
type CreateDeckRequest struct {
	Name string `json:"name" validate:"required"`
}

// RenameDeckRequest is the request body for renaming a deck.
type RenameDeckRequest struct {
	Name string `json:"name" validate:"required"`
}

// SetDeckDirectionRequest is the request body for setting a deck's study
// direction preference.
type SetDeckDirectionRequest struct {
	StudyDirection string `json:"study_direction" validate:"required,oneof=pali_first meaning_first random"`
}

// AddDeckItemsRequest is the request body for adding items to a deck.
type AddDeckItemsRequest struct {
	ItemIDs []int64 `json:"item_ids" validate:"required,min=1,dive,gt=0"`
}

// StartSessionRequest is the request body for starting a study session.
type StartSessionRequest struct {
	DeckID  int64 `json:"deck_id" validate:"required,gt=0"`
	Endless bool  `json:"endless"`
}

// SubmitAnswerRequest is the request body for answering the current card.
// An empty answer is accepted and graded as any other submission.
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// UpdateSettingsRequest is the request body for changing a live session's
// settings, which rebuilds the session.
type UpdateSettingsRequest struct {
	Direction string `json:"direction" validate:"required,oneof=pali_first meaning_first random"`
	Endless   bool   `json:"endless"`
}
