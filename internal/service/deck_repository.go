package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// MsgDeckNotFound is the message of every not-found error returned for decks.
const MsgDeckNotFound = "Deck not found"

// DeckRepository manages saved decks.
//
// Every write is validated before the store is touched, so a rejected deck
// never reaches the database. Failures are *domain.Error values of kind
// KindValidation or KindNotFound, or a *DeckServiceError for store failures.
type DeckRepository interface {
	// Create validates name and cards and saves them as a new deck with a
	// fresh ID and createdAt == updatedAt == now.
	Create(ctx context.Context, name string, cards []domain.Card) (*domain.Deck, error)

	// Get returns the deck with the given ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// List returns every deck, newest first. No decks is not an error.
	List(ctx context.Context) ([]*domain.Deck, error)

	// Update replaces the name and cards of an existing deck. ID and
	// createdAt are kept; updatedAt advances strictly.
	Update(ctx context.Context, id uuid.UUID, name string, cards []domain.Card) (*domain.Deck, error)

	// Delete removes the deck with the given ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Option configures a DeckRepository.
type Option func(*deckRepository)

// WithClock sets the time source used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *deckRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// deckRepository implements the DeckRepository interface
type deckRepository struct {
	decks  store.DeckStore
	now    func() time.Time
	logger *slog.Logger
}

// NewDeckRepository creates a DeckRepository over decks.
// It returns an error if decks is nil.
func NewDeckRepository(decks store.DeckStore, log *slog.Logger, opts ...Option) (DeckRepository, error) {
	if decks == nil {
		return nil, domain.NewValidationError("decks", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	r := &deckRepository{
		decks:  decks,
		now:    time.Now,
		logger: log.With(slog.String("component", "deck_repository")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Create implements DeckRepository.Create
func (r *deckRepository) Create(ctx context.Context, name string, cards []domain.Card) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	deck, err := domain.NewDeck(name, cards, r.now())
	if err != nil {
		log.Debug("rejected deck", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, r.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return r.decks.WithTx(tx).Create(ctx, deck)
	})
	if err != nil {
		log.Error("failed to save deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return nil, NewDeckServiceError("create_deck", "failed to save deck", err)
	}

	log.Info("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("card_count", len(deck.Cards)))
	return deck, nil
}

// Get implements DeckRepository.Get
func (r *deckRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	deck, err := r.decks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, domain.NewNotFoundError(MsgDeckNotFound, err)
		}
		log.Error("failed to retrieve deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, NewDeckServiceError("get_deck", "failed to retrieve deck", err)
	}

	return deck, nil
}

// List implements DeckRepository.List
func (r *deckRepository) List(ctx context.Context) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	decks, err := r.decks.List(ctx)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, NewDeckServiceError("list_decks", "failed to list decks", err)
	}

	log.Debug("listed decks", slog.Int("deck_count", len(decks)))
	return decks, nil
}

// Update implements DeckRepository.Update
func (r *deckRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	name string,
	cards []domain.Card,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	name, cards, err := domain.NormalizeDeckContent(name, cards)
	if err != nil {
		log.Debug("rejected deck update",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, err
	}

	var updated *domain.Deck
	err = store.RunInTransaction(ctx, r.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txDecks := r.decks.WithTx(tx)

		deck, err := txDecks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := deck.Replace(name, cards, r.now()); err != nil {
			return err
		}

		if err := txDecks.Update(ctx, deck); err != nil {
			return err
		}

		updated = deck
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("deck not found for update", slog.String("deck_id", id.String()))
			return nil, domain.NewNotFoundError(MsgDeckNotFound, err)
		}
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, NewDeckServiceError("update_deck", "failed to update deck", err)
	}

	log.Info("deck updated",
		slog.String("deck_id", id.String()),
		slog.Int("card_count", len(updated.Cards)))
	return updated, nil
}

// Delete implements DeckRepository.Delete
func (r *deckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	err := store.RunInTransaction(ctx, r.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return r.decks.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("deck not found for delete", slog.String("deck_id", id.String()))
			return domain.NewNotFoundError(MsgDeckNotFound, err)
		}
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return NewDeckServiceError("delete_deck", "failed to delete deck", err)
	}

	log.Info("deck deleted", slog.String("deck_id", id.String()))
	return nil
}
