package generation

import (
	"context"
)

// Prompt is a rendered generation request.
type Prompt struct {
	// Text is the full instruction sent to the provider, study text included.
	Text string
}

// Gateway defines the interface for sending a prompt to an external
// text-generation service. This interface serves as a boundary between the
// application core and the provider, following the hexagonal architecture
// pattern.
//
// Implementations make at most one provider call per invocation and never
// retry. Failures are *domain.Error values of kind KindConfiguration,
// KindUpstream or KindTransport.
type Gateway interface {
	// Generate sends the prompt and returns the provider's raw text output.
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
