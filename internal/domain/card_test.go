package domain

import (
	"errors"
	"testing"
)

func TestNewCard(t *testing.T) {
	t.Parallel() // Enable parallel execution

	card, err := NewCard("  What is Go?  ", "\tA programming language\n")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.Front != "What is Go?" {
		t.Errorf("Expected trimmed front, got %q", card.Front)
	}

	if card.Back != "A programming language" {
		t.Errorf("Expected trimmed back, got %q", card.Back)
	}
}

func TestNewCardRejectsBlankSides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		front     string
		back      string
		wantField string
	}{
		{name: "empty front", front: "", back: "A", wantField: "front"},
		{name: "whitespace front", front: "   ", back: "A", wantField: "front"},
		{name: "empty back", front: "Q", back: "", wantField: "back"},
		{name: "whitespace back", front: "Q", back: "\n\t", wantField: "back"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewCard(tc.front, tc.back)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}

			var de *Error
			if !errors.As(err, &de) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if de.Field != tc.wantField {
				t.Errorf("Expected field %q, got %q", tc.wantField, de.Field)
			}
		})
	}
}

func TestCardValidate(t *testing.T) {
	t.Parallel()

	if err := (Card{Front: "Q", Back: "A"}).Validate(); err != nil {
		t.Errorf("Expected valid card, got %v", err)
	}

	if err := (Card{Front: " ", Back: "A"}).Validate(); err == nil {
		t.Error("Expected error for blank front")
	}
}
