package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// FlashcardGenerator turns study text into validated, unsaved flashcards.
// *generation.Pipeline implements it.
type FlashcardGenerator interface {
	Generate(ctx context.Context, text string) (*generation.Result, error)
}

// FlashcardHandler handles flashcard generation requests
type FlashcardHandler struct {
	generator FlashcardGenerator
	logger    *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler
func NewFlashcardHandler(generator FlashcardGenerator, logger *slog.Logger) *FlashcardHandler {
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for FlashcardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardHandler{
		generator: generator,
		logger:    logger.With(slog.String("component", "flashcard_handler")),
	}
}

// GenerateFlashcards handles POST /generate-flashcards requests.
// The generated cards are returned to the caller and not saved.
func (h *FlashcardHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateFlashcardsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("invalid generate request body", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	result, err := h.generator.Generate(r.Context(), req.Text)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("flashcards generated", slog.Int("count", result.Count))
	shared.RespondWithJSON(w, r, http.StatusOK, GenerateFlashcardsResponse{
		Flashcards: result.Flashcards,
		Count:      result.Count,
	})
}
