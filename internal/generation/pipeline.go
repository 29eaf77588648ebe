package generation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// Pipeline composes the generation stages. It holds no per-request state and
// is safe for concurrent use.
type Pipeline struct {
	prompts *PromptBuilder
	gateway Gateway
	logger  *slog.Logger
}

// NewPipeline creates a Pipeline. It returns an error if a dependency is nil.
func NewPipeline(prompts *PromptBuilder, gateway Gateway, log *slog.Logger) (*Pipeline, error) {
	if prompts == nil {
		return nil, domain.NewConfigurationError("prompt builder cannot be nil", nil)
	}
	if gateway == nil {
		return nil, domain.NewConfigurationError("generation gateway cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Pipeline{
		prompts: prompts,
		gateway: gateway,
		logger:  log.With("component", "generation_pipeline"),
	}, nil
}

// Generate runs rawText through every stage and returns the validated, unsaved
// cards. Empty input fails before the gateway is called.
func (p *Pipeline) Generate(ctx context.Context, rawText string) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	text, err := NormalizeText(rawText)
	if err != nil {
		return nil, err
	}

	prompt, err := p.prompts.Build(text)
	if err != nil {
		return nil, err
	}

	log.Debug("requesting flashcards from provider", "text_length", len(text))

	raw, err := p.gateway.Generate(ctx, prompt)
	if err != nil {
		var de *domain.Error
		if !errors.As(err, &de) {
			err = domain.NewUpstreamError(MsgGenerationFailed, "", 0, err)
		}
		log.Warn("provider call failed", "kind", domain.KindOf(err), "error", redact.Error(err))
		return nil, err
	}

	candidates, err := ParseCandidates(raw)
	if err != nil {
		log.Warn("provider output could not be parsed", "error", err, "output_length", len(raw))
		return nil, err
	}

	result, err := ValidateCandidates(candidates)
	if err != nil {
		log.Warn("provider output held no valid flashcards", "candidates", len(candidates))
		return nil, err
	}

	log.Info("flashcards generated",
		"count", result.Count,
		"discarded", result.Discarded)

	return result, nil
}
