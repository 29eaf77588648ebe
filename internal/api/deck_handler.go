package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
)

// MsgDeckDeleted confirms a successful DELETE /decks/{id}.
const MsgDeckDeleted = "Deck deleted successfully"

// DeckHandler handles deck CRUD requests
type DeckHandler struct {
	decks  service.DeckRepository
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(decks service.DeckRepository, logger *slog.Logger) *DeckHandler {
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck repository cannot be nil for DeckHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckHandler{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// Routes registers the deck endpoints on r.
func (h *DeckHandler) Routes(r chi.Router) {
	r.Get("/", h.ListDecks)
	r.Post("/", h.CreateDeck)
	r.Get("/{id}", h.GetDeck)
	r.Put("/{id}", h.UpdateDeck)
	r.Delete("/{id}", h.DeleteDeck)
}

// ListDecks handles GET /decks requests
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if decks == nil {
		decks = []*domain.Deck{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// GetDeck handles GET /decks/{id} requests
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deckID(w, r)
	if !ok {
		return
	}

	deck, err := h.decks.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// CreateDeck handles POST /decks requests
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDeckRequest(w, r)
	if !ok {
		return
	}

	deck, err := h.decks.Create(r.Context(), req.Name, req.DomainCards())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// UpdateDeck handles PUT /decks/{id} requests
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deckID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeDeckRequest(w, r)
	if !ok {
		return
	}

	deck, err := h.decks.Update(r.Context(), id, req.Name, req.DomainCards())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /decks/{id} requests
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deckID(w, r)
	if !ok {
		return
	}

	if err := h.decks.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: MsgDeckDeleted})
}

// deckID parses the {id} path parameter. No deck can have a malformed ID, so
// parse failures are reported as not found.
func (h *DeckHandler) deckID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("malformed deck ID", slog.String("deck_id", raw))
		HandleAPIError(w, r, domain.NewNotFoundError(service.MsgDeckNotFound, err))
		return uuid.Nil, false
	}
	return id, true
}

func (h *DeckHandler) decodeDeckRequest(w http.ResponseWriter, r *http.Request) (DeckRequest, bool) {
	var req DeckRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return DeckRequest{}, false
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return DeckRequest{}, false
	}

	return req, true
}
