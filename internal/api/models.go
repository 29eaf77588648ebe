package api

import (
	"github.com/phrazzld/flashdeck/internal/domain"
)

// GenerateFlashcardsRequest is the payload of POST /generate-flashcards.
type GenerateFlashcardsRequest struct {
	Text string `json:"text"`
}

// GenerateFlashcardsResponse is the unsaved result of a generation run.
type GenerateFlashcardsResponse struct {
	Flashcards []domain.Card `json:"flashcards"`
	Count      int           `json:"count"`
}

// CardRequest is one card of a deck payload.
type CardRequest struct {
	Front string `json:"front" validate:"max=2000"`
	Back  string `json:"back"  validate:"max=2000"`
}

// DeckRequest is the payload of POST /decks and PUT /decks/{id}.
// Emptiness is checked by the deck repository, which trims first.
type DeckRequest struct {
	Name  string        `json:"name"  validate:"max=200"`
	Cards []CardRequest `json:"cards" validate:"dive"`
}

// DomainCards converts the request cards to domain cards, in order.
func (r DeckRequest) DomainCards() []domain.Card {
	cards := make([]domain.Card, 0, len(r.Cards))
	for _, c := range r.Cards {
		cards = append(cards, domain.Card{Front: c.Front, Back: c.Back})
	}
	return cards
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
