package generation

import (
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// NormalizeText trims surrounding whitespace from raw input text.
// It returns a validation error for text that is empty after trimming.
func NormalizeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", domain.NewValidationError("text", MsgEmptyInput, nil)
	}
	return text, nil
}
