package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
//
// A deck is stored as one row in decks plus one row per card in deck_cards.
// Implementations do not enforce the deck invariants; callers must validate
// before writing.
type DeckStore interface {
	// Create saves a new deck and its cards.
	// IMPORTANT: This method writes several rows and MUST be run within a
	// transaction for atomicity. Use WithTx together with RunInTransaction:
	//
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       return deckStore.WithTx(tx).Create(ctx, deck)
	//   })
	//
	// Returns ErrDuplicate if a deck with the same ID already exists.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck and its cards in position order.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// List returns every deck ordered by creation time, newest first.
	// An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]*domain.Deck, error)

	// Update replaces the name, cards and updated_at of an existing deck.
	// created_at is never written. Like Create it MUST run within a transaction.
	// Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck and its cards.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a DeckStore that runs its statements on tx.
	WithTx(tx *sql.Tx) DeckStore

	// DB returns the underlying connection pool, for starting transactions.
	DB() *sql.DB
}
