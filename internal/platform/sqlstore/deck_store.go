package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// DeckStore implements the store.DeckStore interface on database/sql.
type DeckStore struct {
	db     store.DBTX
	pool   *sql.DB
	logger *slog.Logger
}

// Ensure DeckStore implements store.DeckStore interface
var _ store.DeckStore = (*DeckStore)(nil)

// NewDeckStore creates a DeckStore over the connection pool db.
// If logger is nil, a default logger will be used.
func NewDeckStore(db *sql.DB, logger *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DeckStore{
		db:     db,
		pool:   db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// WithTx implements store.DeckStore.WithTx
func (s *DeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &DeckStore{
		db:     tx,
		pool:   s.pool,
		logger: s.logger,
	}
}

// DB implements store.DeckStore.DB
func (s *DeckStore) DB() *sql.DB {
	return s.pool
}

// Create implements store.DeckStore.Create
func (s *DeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decks (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, deck.ID, deck.Name, deck.CreatedAt, deck.UpdatedAt)
	if err != nil {
		log.Error("failed to insert deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "create", "failed to insert deck", MapError(err))
	}

	if err := s.insertCards(ctx, deck); err != nil {
		log.Error("failed to insert deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "create", "failed to insert cards", err)
	}

	log.Debug("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("card_count", len(deck.Cards)))
	return nil
}

// GetByID implements store.DeckStore.GetByID
func (s *DeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		deck                 domain.Deck
		createdAt, updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM decks
		WHERE id = $1
	`, id).Scan(&deck.ID, &deck.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "failed to query deck", MapError(err))
	}
	deck.CreatedAt = domain.Timestamp(createdAt)
	deck.UpdatedAt = domain.Timestamp(updatedAt)

	rows, err := s.db.QueryContext(ctx, `
		SELECT front, back
		FROM deck_cards
		WHERE deck_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, store.NewStoreError("deck", "get", "failed to query cards", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	deck.Cards = []domain.Card{}
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.Front, &c.Back); err != nil {
			return nil, store.NewStoreError("deck", "get", "failed to scan card", err)
		}
		deck.Cards = append(deck.Cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "get", "failed to iterate cards", err)
	}

	return &deck, nil
}

// List implements store.DeckStore.List
// Decks and cards are read with one joined query and assembled in order.
func (s *DeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.created_at, d.updated_at, c.front, c.back
		FROM decks d
		LEFT JOIN deck_cards c ON c.deck_id = d.id
		ORDER BY d.created_at DESC, d.id ASC, c.position ASC
	`)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "list", "failed to query decks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	decks := []*domain.Deck{}
	var current *domain.Deck
	for rows.Next() {
		var (
			id                   uuid.UUID
			name                 string
			createdAt, updatedAt time.Time
			front, back          sql.NullString
		)
		if err := rows.Scan(&id, &name, &createdAt, &updatedAt, &front, &back); err != nil {
			return nil, store.NewStoreError("deck", "list", "failed to scan row", err)
		}

		if current == nil || current.ID != id {
			current = &domain.Deck{
				ID:        id,
				Name:      name,
				Cards:     []domain.Card{},
				CreatedAt: domain.Timestamp(createdAt),
				UpdatedAt: domain.Timestamp(updatedAt),
			}
			decks = append(decks, current)
		}
		if front.Valid && back.Valid {
			current.Cards = append(current.Cards, domain.Card{Front: front.String, Back: back.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "list", "failed to iterate rows", err)
	}

	log.Debug("decks listed", slog.Int("count", len(decks)))
	return decks, nil
}

// Update implements store.DeckStore.Update
// The card set is replaced wholesale: existing rows are deleted, then the
// new cards are inserted with fresh positions.
func (s *DeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE decks
		SET name = $1, updated_at = $2
		WHERE id = $3
	`, deck.Name, deck.UpdatedAt, deck.ID)
	if err != nil {
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "update", "failed to update deck", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			log.Debug("deck not found for update", slog.String("deck_id", deck.ID.String()))
		}
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = $1`, deck.ID); err != nil {
		return store.NewStoreError("deck", "update", "failed to clear cards", MapError(err))
	}

	if err := s.insertCards(ctx, deck); err != nil {
		return store.NewStoreError("deck", "update", "failed to insert cards", err)
	}

	log.Debug("deck updated",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("card_count", len(deck.Cards)))
	return nil
}

// Delete implements store.DeckStore.Delete
// Cards are deleted explicitly so that correctness does not depend on the
// backend enforcing ON DELETE CASCADE.
func (s *DeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = $1`, id); err != nil {
		return store.NewStoreError("deck", "delete", "failed to delete cards", MapError(err))
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return store.NewStoreError("deck", "delete", "failed to delete deck", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		return err
	}

	log.Debug("deck deleted", slog.String("deck_id", id.String()))
	return nil
}

func (s *DeckStore) insertCards(ctx context.Context, deck *domain.Deck) error {
	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO deck_cards (deck_id, position, front, back)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("prepare card insert: %w", MapError(err))
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range deck.Cards {
		if _, err := stmt.ExecContext(ctx, deck.ID, i, c.Front, c.Back); err != nil {
			return fmt.Errorf("card %d: %w", i, MapError(err))
		}
	}
	return nil
}
