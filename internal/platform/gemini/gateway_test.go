package gemini_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = "gemini-test"

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// fakeGemini serves generateContent requests with a fixed status and body and
// records what it received.
type fakeGemini struct {
	status int
	body   string
	delay  time.Duration

	calls   atomic.Int32
	path    atomic.Value
	apiKey  atomic.Value
	request atomic.Value
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.path.Store(r.URL.Path)
	f.apiKey.Store(r.Header.Get("x-goog-api-key"))
	raw, _ := io.ReadAll(r.Body)
	f.request.Store(string(raw))

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.body))
}

func candidateBody(text, finishReason string) string {
	body := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": finishReason,
			},
		},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func newGateway(t *testing.T, baseURL, apiKey string) *gemini.Gateway {
	t.Helper()

	gw, err := gemini.NewGateway(context.Background(), testLogger(), config.LLMConfig{
		Provider:     config.ProviderGemini,
		ModelName:    testModel,
		GeminiAPIKey: apiKey,
		BaseURL:      baseURL,
		Temperature:  0.3,
	})
	require.NoError(t, err)
	return gw
}

func TestNewGateway_Validation(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewGateway(context.Background(), nil, config.LLMConfig{ModelName: testModel})
	assert.Error(t, err)

	_, err = gemini.NewGateway(context.Background(), testLogger(), config.LLMConfig{})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	t.Parallel()

	fake := &fakeGemini{status: http.StatusOK, body: candidateBody("[]", "STOP")}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	gw := newGateway(t, srv.URL, "")

	out, err := gw.Generate(context.Background(), generation.Prompt{Text: "prompt"})

	assert.Empty(t, out)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Equal(t, int32(0), fake.calls.Load(), "no network call without a key")
}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	payload := `[{"front":"Q","back":"A"}]`
	fake := &fakeGemini{status: http.StatusOK, body: candidateBody(payload, "STOP")}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	gw := newGateway(t, srv.URL, "test-key")

	out, err := gw.Generate(context.Background(), generation.Prompt{Text: "make cards about water"})

	require.NoError(t, err)
	assert.Equal(t, payload, out)
	assert.Equal(t, int32(1), fake.calls.Load())
	assert.Equal(t, "/v1beta/models/"+testModel+":generateContent", fake.path.Load())
	assert.Equal(t, "test-key", fake.apiKey.Load())

	sent := fake.request.Load().(string)
	assert.Contains(t, sent, "make cards about water")
	assert.Contains(t, sent, "application/json")
}

func TestGenerate_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		want       error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "api error",
			status:     http.StatusBadRequest,
			body:       `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
			want:       domain.ErrUpstream,
			wantStatus: http.StatusBadRequest,
			wantDetail: "API key not valid. Please pass a valid API key.",
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`,
			want:       domain.ErrUpstream,
			wantStatus: http.StatusTooManyRequests,
			wantDetail: "Resource has been exhausted",
		},
		{
			name:       "no candidates",
			status:     http.StatusOK,
			body:       `{"candidates":[]}`,
			want:       domain.ErrUpstream,
			wantDetail: "no content generated",
		},
		{
			name:       "prompt blocked",
			status:     http.StatusOK,
			body:       `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			want:       domain.ErrUpstream,
			wantDetail: "prompt blocked: SAFETY",
		},
		{
			name:       "safety finish",
			status:     http.StatusOK,
			body:       candidateBody("partial", "SAFETY"),
			want:       domain.ErrUpstream,
			wantDetail: "content blocked by safety filters",
		},
		{
			name:       "empty content",
			status:     http.StatusOK,
			body:       `{"candidates":[{"finishReason":"STOP"}]}`,
			want:       domain.ErrUpstream,
			wantDetail: "empty content in response",
		},
		{
			name:       "blank text",
			status:     http.StatusOK,
			body:       candidateBody("  ", "STOP"),
			want:       domain.ErrUpstream,
			wantDetail: "empty content in response",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeGemini{status: tc.status, body: tc.body}
			srv := httptest.NewServer(fake)
			defer srv.Close()

			gw := newGateway(t, srv.URL, "test-key")
			_, err := gw.Generate(context.Background(), generation.Prompt{Text: "prompt"})

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var de *domain.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, generation.MsgGenerationFailed, de.Message)
			assert.Equal(t, tc.wantStatus, de.Status)
			assert.Equal(t, tc.wantDetail, de.Detail)
			assert.Equal(t, int32(1), fake.calls.Load(), "no retries")
		})
	}
}

func TestGenerate_TransportFailures(t *testing.T) {
	t.Parallel()

	t.Run("server unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		gw := newGateway(t, url, "test-key")
		_, err := gw.Generate(context.Background(), generation.Prompt{Text: "prompt"})

		assert.ErrorIs(t, err, domain.ErrTransport)
	})

	t.Run("context deadline", func(t *testing.T) {
		t.Parallel()

		fake := &fakeGemini{status: http.StatusOK, body: candidateBody("[]", "STOP"), delay: 2 * time.Second}
		srv := httptest.NewServer(fake)
		defer srv.Close()

		gw := newGateway(t, srv.URL, "test-key")

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := gw.Generate(ctx, generation.Prompt{Text: "prompt"})
		assert.ErrorIs(t, err, domain.ErrTransport)
	})
}

func TestGenerate_LogsWithoutPromptText(t *testing.T) {
	t.Parallel()

	fake := &fakeGemini{status: http.StatusOK, body: candidateBody(`[{"front":"Q","back":"A"}]`, "STOP")}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	gw, err := gemini.NewGateway(context.Background(), log, config.LLMConfig{
		ModelName:    testModel,
		GeminiAPIKey: "test-key",
		BaseURL:      srv.URL,
	})
	require.NoError(t, err)

	_, err = gw.Generate(context.Background(), generation.Prompt{Text: "secret study notes"})
	require.NoError(t, err)

	assert.True(t, strings.Contains(buf.String(), "gemini_gateway"))
	assert.NotContains(t, buf.String(), "secret study notes")
	assert.NotContains(t, buf.String(), "test-key")
}

func TestGenerate_SendsConfiguredTemperature(t *testing.T) {
	t.Parallel()

	for _, temperature := range []float64{0, 0.3} {
		fake := &fakeGemini{status: http.StatusOK, body: candidateBody(`[]`, "STOP")}
		srv := httptest.NewServer(fake)

		gw, err := gemini.NewGateway(context.Background(), testLogger(), config.LLMConfig{
			Provider:     config.ProviderGemini,
			ModelName:    testModel,
			GeminiAPIKey: "test-key",
			BaseURL:      srv.URL,
			Temperature:  temperature,
		})
		require.NoError(t, err)

		_, err = gw.Generate(context.Background(), generation.Prompt{Text: "cards"})
		require.NoError(t, err)
		srv.Close()

		var sent map[string]any
		require.NoError(t, json.Unmarshal([]byte(fake.request.Load().(string)), &sent))
		genConfig, ok := sent["generationConfig"].(map[string]any)
		require.True(t, ok, "generationConfig present")
		got, ok := genConfig["temperature"]
		require.True(t, ok, "temperature %v is sent", temperature)
		assert.InDelta(t, temperature, got, 1e-6)
	}
}
