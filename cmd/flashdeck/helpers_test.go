package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

const validProviderOutput = "```json\n[{\"front\": \"What is Go?\", \"back\": \"A programming language\"}, {\"front\": \"Who made Go?\", \"back\": \"Google\"}]\n```"

// fakeProvider is a chat-completions endpoint returning a fixed reply.
type fakeProvider struct {
	*httptest.Server
	calls atomic.Int32
}

func newFakeProvider(t *testing.T, status int, content string) *fakeProvider {
	t.Helper()

	p := &fakeProvider{}
	p.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": content, "type": "server_error"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(p.Close)
	return p
}

// writeConfig writes a YAML config using an OpenAI-compatible provider at
// providerURL and a SQLite database in a temporary directory.
func writeConfig(t *testing.T, providerURL string) string {
	t.Helper()

	dir := t.TempDir()
	content := fmt.Sprintf(`server:
  port: 8080
  log_level: debug
database:
  driver: sqlite
  url: "file:%s"
llm:
  provider: openai
  model_name: test-model
  openai_api_key: test-key
  base_url: %q
`, filepath.ToSlash(filepath.Join(dir, "flashdeck.db")), providerURL)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCommand executes the root command with args and returns what it wrote
// to stdout.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), err
}
