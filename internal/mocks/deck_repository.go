package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
)

var _ service.DeckRepository = (*MockDeckRepository)(nil)

// MockDeckRepository implements service.DeckRepository for testing
type MockDeckRepository struct {
	// Custom behavior functions
	CreateFn func(ctx context.Context, name string, cards []domain.Card) (*domain.Deck, error)
	GetFn    func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ListFn   func(ctx context.Context) ([]*domain.Deck, error)
	UpdateFn func(ctx context.Context, id uuid.UUID, name string, cards []domain.Card) (*domain.Deck, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) error

	// Default return values
	Deck         *domain.Deck
	Decks        []*domain.Deck
	DefaultError error

	mu    sync.Mutex
	calls []string
}

func (m *MockDeckRepository) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockDeckRepository) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Create implements the DeckRepository.Create method
func (m *MockDeckRepository) Create(ctx context.Context, name string, cards []domain.Card) (*domain.Deck, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name, cards)
	}
	return m.Deck, m.DefaultError
}

// Get implements the DeckRepository.Get method
func (m *MockDeckRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	m.record("Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return m.Deck, m.DefaultError
}

// List implements the DeckRepository.List method
func (m *MockDeckRepository) List(ctx context.Context) ([]*domain.Deck, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Decks, m.DefaultError
}

// Update implements the DeckRepository.Update method
func (m *MockDeckRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	name string,
	cards []domain.Card,
) (*domain.Deck, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, name, cards)
	}
	return m.Deck, m.DefaultError
}

// Delete implements the DeckRepository.Delete method
func (m *MockDeckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}
