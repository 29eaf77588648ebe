package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain"
)

var (
	// fencedBlock matches the first fenced block whose delimiters sit on
	// their own lines. JSON strings cannot hold a raw newline, so backticks
	// inside a card never terminate the block.
	fencedBlock = regexp.MustCompile("(?ms)^```[A-Za-z0-9_+-]*[ \t]*\r?\n(.*?)\r?\n```[ \t]*$")

	// fenceOpener matches a fence delimiter and language tag at the start of
	// the payload.
	fenceOpener = regexp.MustCompile("^```[A-Za-z0-9_+-]*")
)

const fence = "```"

// StripCodeFences removes markdown code-fence markup that bounds the payload.
// A fenced block on its own lines is returned as is. Otherwise a leading
// opener and a trailing closer are dropped, which covers one-line and
// truncated fences. Backticks inside the payload are left untouched. The
// result is trimmed.
func StripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)

	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	if !strings.HasPrefix(text, fence) {
		return text
	}
	text = strings.TrimSpace(fenceOpener.ReplaceAllString(text, ""))
	text = strings.TrimSuffix(text, fence)
	return strings.TrimSpace(text)
}

// ParseCandidates sanitizes raw provider output and parses it as a JSON
// array. Elements are returned as decoded by encoding/json and have not been
// validated. Malformed JSON, or JSON that is not an array, yields a parse
// error; there is no attempt at partial recovery.
func ParseCandidates(raw string) ([]any, error) {
	cleaned := StripCodeFences(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, domain.NewParseError(MsgParseFailed, err)
	}

	candidates, ok := parsed.([]any)
	if !ok {
		return nil, domain.NewParseError(MsgNotAnArray, nil)
	}

	return candidates, nil
}
