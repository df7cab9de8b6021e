package domain

import (
	"errors"
	"strings"
	"time"
)

// Item-specific validation errors
var (
	// ErrItemPaliEmpty is returned when an item's Pali text is empty.
	ErrItemPaliEmpty = errors.New("item pali text cannot be empty")

	// ErrItemMeaningEmpty is returned when an item's meaning is empty.
	ErrItemMeaningEmpty = errors.New("item meaning cannot be empty")

	// ErrInvalidItemType is returned when an item's type is not one of the
	// known ItemType values.
	ErrInvalidItemType = errors.New("invalid item type")
)

// ItemType classifies a learnable unit.
type ItemType string

// Possible item types
const (
	ItemTypeWord     ItemType = "word"
	ItemTypePrefix   ItemType = "prefix"
	ItemTypeSuffix   ItemType = "suffix"
	ItemTypeRoot     ItemType = "root"
	ItemTypeParticle ItemType = "particle"
)

// ItemTypes lists all valid item types.
var ItemTypes = []ItemType{
	ItemTypeWord,
	ItemTypePrefix,
	ItemTypeSuffix,
	ItemTypeRoot,
	ItemTypeParticle,
}

// IsValid reports whether t is a known item type.
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeWord, ItemTypePrefix, ItemTypeSuffix, ItemTypeRoot, ItemTypeParticle:
		return true
	default:
		return false
	}
}

// Item represents a single learnable unit: a Pali word, prefix, suffix,
// root, or particle together with its meaning. Each item owns exactly two
// ReviewStates, one per study direction, created atomically with the item.
type Item struct {
	ID        int64     `json:"id"`
	Type      ItemType  `json:"type"`
	Pali      string    `json:"pali"`
	Meaning   string    `json:"meaning"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the item's fields satisfy the domain rules.
func (i *Item) Validate() error {
	if !i.Type.IsValid() {
		return ErrInvalidItemType
	}
	if strings.TrimSpace(i.Pali) == "" {
		return ErrItemPaliEmpty
	}
	if strings.TrimSpace(i.Meaning) == "" {
		return ErrItemMeaningEmpty
	}
	return nil
}
