// Package redact scrubs credentials from strings before they are logged or
// returned as error details. It targets secrets only (database passwords,
// provider API keys, bearer tokens) so provider diagnostics stay readable.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted values.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; specific key formats run before the generic
// key=value rule.
var rules = []rule{
	// user:password@ in connection URLs
	{
		regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|mongodb|db|database)://[^@\s/]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd)([=:]\s*['"]?)[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	// Google API keys
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`), RedactedKeyPlaceholder},
	// OpenAI-style secret keys
	{regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{16,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`), RedactedKeyPlaceholder},
	{
		regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/]{8,}=*`),
		"Bearer " + RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(api[_-]?key|key|token|secret|access[_-]?token)=[^&\s'"]{8,}`),
		"${1}=" + RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		RedactedStackPlaceholder,
	},
}

// String redacts credentials from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts credentials from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
