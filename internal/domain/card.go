package domain

import (
	"strings"
)

// Card validation messages.
const (
	msgCardFrontEmpty = "Card front cannot be empty"
	msgCardBackEmpty  = "Card back cannot be empty"
)

// Card is a single question/answer flashcard.
// A Card returned by NewCard has both sides trimmed and non-empty.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// NewCard trims both sides and returns a validated Card.
func NewCard(front, back string) (Card, error) {
	card := Card{
		Front: strings.TrimSpace(front),
		Back:  strings.TrimSpace(back),
	}

	if err := card.Validate(); err != nil {
		return Card{}, err
	}

	return card, nil
}

// Validate checks that both sides are non-empty after trimming whitespace.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Front) == "" {
		return NewValidationError("front", msgCardFrontEmpty, nil)
	}

	if strings.TrimSpace(c.Back) == "" {
		return NewValidationError("back", msgCardBackEmpty, nil)
	}

	return nil
}
