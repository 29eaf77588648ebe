package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"google.golang.org/genai"
)

// Gateway implements generation.Gateway using the Gemini API.
type Gateway struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is nil when no API key is configured
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	// temperature is always sent; 0 asks for the most deterministic output
	temperature float32
}

var _ generation.Gateway = (*Gateway)(nil)

// Option customizes a Gateway.
type Option func(*genai.ClientConfig)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = client
	}
}

// NewGateway creates a Gemini gateway from cfg.
//
// An empty API key is not an error here: the returned gateway fails every
// Generate call with a configuration error instead, so that the rest of the
// service can still start. cfg.BaseURL, when set, replaces the public
// endpoint.
func NewGateway(ctx context.Context, log *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Gateway, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, domain.NewConfigurationError("gemini model name cannot be empty", nil)
	}

	g := &Gateway{
		logger:      log.With("component", "gemini_gateway"),
		model:       cfg.ModelName,
		temperature: float32(cfg.Temperature),
	}

	if cfg.GeminiAPIKey == "" {
		g.logger.WarnContext(ctx, "gemini API key is not set; flashcard generation is disabled")
		return g, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/"
	}
	for _, opt := range opts {
		opt(clientConfig)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, domain.NewConfigurationError("failed to create Gemini client", err)
	}
	g.client = client

	return g, nil
}

// Generate sends the prompt to the configured model and returns the text of
// the first candidate.
func (g *Gateway) Generate(ctx context.Context, prompt generation.Prompt) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if g.client == nil {
		return "", domain.NewConfigurationError(generation.MsgNotConfigured,
			errors.New("gemini API key is not set"))
	}

	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      &temperature,
	}

	log.DebugContext(ctx, "making Gemini API call",
		"model", g.model,
		"prompt_length", len(prompt.Text))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt.Text), genConfig)
	if err != nil {
		classified := classifyError(err)
		log.ErrorContext(ctx, "Gemini API call failed",
			"kind", classified.Kind,
			"status", classified.Status,
			"error", err)
		return "", classified
	}

	text, err := extractText(resp)
	if err != nil {
		log.ErrorContext(ctx, "Gemini API returned an unusable response", "error", err)
		return "", err
	}

	log.DebugContext(ctx, "Gemini API call successful", "response_length", len(text))
	return text, nil
}

// classifyError maps a client error onto the domain taxonomy.
func classifyError(err error) *domain.Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		detail := apiErr.Message
		if detail == "" {
			detail = apiErr.Status
		}
		return domain.NewUpstreamError(generation.MsgGenerationFailed, detail, apiErr.Code, err)
	}
	if isTransportError(err) {
		return domain.NewTransportError(generation.MsgGenerationFailed, err)
	}
	// A 2xx response whose body could not be decoded.
	return domain.NewUpstreamError(generation.MsgGenerationFailed, "malformed response from provider", 0, err)
}

// extractText returns the concatenated text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", upstream("nil response")
	case len(resp.Candidates) == 0:
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", upstream(fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
		}
		return "", upstream("no content generated")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", upstream("content blocked by safety filters")
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", upstream("empty content in response")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", upstream("empty content in response")
	}
	return b.String(), nil
}

func upstream(detail string) *domain.Error {
	return domain.NewUpstreamError(generation.MsgGenerationFailed, detail, 0, nil)
}

func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
