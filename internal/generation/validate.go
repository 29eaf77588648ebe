package generation

import (
	"github.com/phrazzld/flashdeck/internal/domain"
)

// Result is the outcome of a successful generation: the validated cards in
// provider order and how many there are. It is an unsaved deck body.
type Result struct {
	Flashcards []domain.Card `json:"flashcards"`
	Count      int           `json:"count"`

	// Discarded is the number of candidates dropped by validation.
	Discarded int `json:"-"`
}

// ValidateCandidates keeps the candidates that are objects with non-blank
// string "front" and "back" fields, preserving their relative order.
// It returns an empty-result error when nothing survives.
func ValidateCandidates(candidates []any) (*Result, error) {
	cards := make([]domain.Card, 0, len(candidates))
	for _, c := range candidates {
		card, ok := candidateToCard(c)
		if !ok {
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, domain.NewEmptyResultError(MsgNoValidCards)
	}

	return &Result{
		Flashcards: cards,
		Count:      len(cards),
		Discarded:  len(candidates) - len(cards),
	}, nil
}

func candidateToCard(candidate any) (domain.Card, bool) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		return domain.Card{}, false
	}

	front, ok := obj["front"].(string)
	if !ok {
		return domain.Card{}, false
	}

	back, ok := obj["back"].(string)
	if !ok {
		return domain.Card{}, false
	}

	card, err := domain.NewCard(front, back)
	if err != nil {
		return domain.Card{}, false
	}

	return card, true
}
