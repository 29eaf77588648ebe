package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// DefaultBaseURL is the public OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

const maxBodyBytes = 10 * 1024 * 1024 // 10 MiB

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Gateway implements generation.Gateway against a chat-completions API.
type Gateway struct {
	logger      *slog.Logger
	httpClient  *http.Client
	endpoint    string
	apiKey      string
	model       string
	temperature float64
}

var _ generation.Gateway = (*Gateway)(nil)

// NewGateway creates a gateway from cfg. A nil httpClient selects a client
// with a two minute timeout. As with the Gemini gateway, an empty API key
// yields a gateway whose every call fails with a configuration error.
func NewGateway(log *slog.Logger, cfg config.LLMConfig, httpClient *http.Client) (*Gateway, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, domain.NewConfigurationError("openai model name cannot be empty", nil)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}

	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	endpoint, err := url.JoinPath(base, "chat/completions")
	if err != nil {
		return nil, domain.NewConfigurationError("invalid openai base URL", err)
	}

	g := &Gateway{
		logger:      log.With("component", "openai_gateway"),
		httpClient:  httpClient,
		endpoint:    endpoint,
		apiKey:      cfg.OpenAIAPIKey,
		model:       cfg.ModelName,
		temperature: cfg.Temperature,
	}
	if g.apiKey == "" {
		g.logger.Warn("openai API key is not set; flashcard generation is disabled")
	}

	return g, nil
}

// Generate sends the prompt as a single user message and returns the content
// of the first choice.
func (g *Gateway) Generate(ctx context.Context, prompt generation.Prompt) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if g.apiKey == "" {
		return "", domain.NewConfigurationError(generation.MsgNotConfigured,
			errors.New("openai API key is not set"))
	}

	body, err := json.Marshal(chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt.Text}},
		Temperature: g.temperature,
	})
	if err != nil {
		return "", domain.NewConfigurationError("failed to encode chat request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", domain.NewConfigurationError("failed to create chat request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	log.DebugContext(ctx, "making chat completion call",
		"model", g.model,
		"prompt_length", len(prompt.Text))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.ErrorContext(ctx, "chat completion call failed", "error", err)
		return "", domain.NewTransportError(generation.MsgGenerationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", domain.NewTransportError(generation.MsgGenerationFailed,
			fmt.Errorf("reading response body: %w", err))
	}

	var parsed chatResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := http.StatusText(resp.StatusCode)
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			detail = parsed.Error.Message
		}
		log.ErrorContext(ctx, "chat completion returned an error status",
			"status", resp.StatusCode,
			"detail", redact.String(detail))
		return "", domain.NewUpstreamError(generation.MsgGenerationFailed, detail, resp.StatusCode,
			fmt.Errorf("openai: HTTP %d", resp.StatusCode))
	}

	if decodeErr != nil {
		return "", domain.NewUpstreamError(generation.MsgGenerationFailed,
			"malformed response from provider", resp.StatusCode, decodeErr)
	}
	if len(parsed.Choices) == 0 {
		return "", domain.NewUpstreamError(generation.MsgGenerationFailed,
			"no content generated", resp.StatusCode, nil)
	}

	choice := parsed.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", domain.NewUpstreamError(generation.MsgGenerationFailed,
			"content blocked by safety filters", resp.StatusCode, nil)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", domain.NewUpstreamError(generation.MsgGenerationFailed,
			"empty content in response", resp.StatusCode, nil)
	}

	log.DebugContext(ctx, "chat completion call successful",
		"response_length", len(choice.Message.Content))
	return choice.Message.Content, nil
}
