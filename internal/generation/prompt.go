package generation

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"

	"github.com/phrazzld/flashdeck/internal/domain"
)

//go:embed prompts/flashcards.tmpl
var promptFS embed.FS

const defaultPromptPath = "prompts/flashcards.tmpl"

// promptData is the data passed to the prompt template.
type promptData struct {
	Text string
}

// PromptBuilder renders generation prompts from a fixed instruction template.
// Rendering is deterministic: the same text always yields the same prompt.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the prompt template. An empty templatePath selects
// the built-in template; otherwise the file at templatePath is used and must
// reference the study text as {{.Text}}.
func NewPromptBuilder(templatePath string) (*PromptBuilder, error) {
	var (
		content []byte
		err     error
	)
	if templatePath == "" {
		content, err = promptFS.ReadFile(defaultPromptPath)
	} else {
		content, err = os.ReadFile(templatePath)
	}
	if err != nil {
		return nil, domain.NewConfigurationError(
			fmt.Sprintf("failed to read prompt template %q", templatePath), err)
	}

	tmpl, err := template.New("flashcards").Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, domain.NewConfigurationError("failed to parse prompt template", err)
	}

	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build renders the prompt for already-normalized text.
func (b *PromptBuilder) Build(text string) (Prompt, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, promptData{Text: text}); err != nil {
		return Prompt{}, domain.NewConfigurationError("failed to execute prompt template", err)
	}
	return Prompt{Text: buf.String()}, nil
}
