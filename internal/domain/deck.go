package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Deck validation messages.
const (
	MsgDeckNameRequired = "Deck name is required"
	MsgDeckCardsEmpty   = "Deck must contain at least one card"
)

// Deck is a named, ordered collection of cards.
//
// Invariants: Cards is never empty, every card is valid, UpdatedAt is never
// before CreatedAt and ID never changes once assigned.
type Deck struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDeck validates name and cards and returns a deck with a fresh ID and
// both timestamps set to now.
func NewDeck(name string, cards []Card, now time.Time) (*Deck, error) {
	name, cards, err := NormalizeDeckContent(name, cards)
	if err != nil {
		return nil, err
	}

	now = Timestamp(now)
	return &Deck{
		ID:        uuid.New(),
		Name:      name,
		Cards:     cards,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Replace swaps the deck's name and cards. ID and CreatedAt are kept and
// UpdatedAt moves strictly forward, even when now is not after the previous
// value. On error the deck is left unchanged.
func (d *Deck) Replace(name string, cards []Card, now time.Time) error {
	name, cards, err := NormalizeDeckContent(name, cards)
	if err != nil {
		return err
	}

	updatedAt := Timestamp(now)
	if !updatedAt.After(d.UpdatedAt) {
		updatedAt = d.UpdatedAt.Add(time.Microsecond)
	}

	d.Name = name
	d.Cards = cards
	d.UpdatedAt = updatedAt
	return nil
}

// Validate checks every deck invariant.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return NewValidationError("id", "Deck ID cannot be empty", nil)
	}

	if _, _, err := NormalizeDeckContent(d.Name, d.Cards); err != nil {
		return err
	}

	if d.UpdatedAt.Before(d.CreatedAt) {
		return NewValidationError("updatedAt", "Deck cannot be updated before it was created", nil)
	}

	return nil
}

// NormalizeDeckContent validates a deck name and card list and returns their
// trimmed forms. The input slice is not modified.
func NormalizeDeckContent(name string, cards []Card) (string, []Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, NewValidationError("name", MsgDeckNameRequired, nil)
	}

	if len(cards) == 0 {
		return "", nil, NewValidationError("cards", MsgDeckCardsEmpty, nil)
	}

	normalized := make([]Card, 0, len(cards))
	for i, c := range cards {
		card, err := NewCard(c.Front, c.Back)
		if err != nil {
			var de *Error
			if errors.As(err, &de) {
				return "", nil, NewValidationError(fmt.Sprintf("cards[%d].%s", i, de.Field), de.Message, nil)
			}
			return "", nil, err
		}
		normalized = append(normalized, card)
	}

	return name, normalized, nil
}

// Timestamp normalizes t to UTC with microsecond precision, the finest
// resolution every supported database keeps.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
