package generation

// User-facing messages for pipeline failures. Adapters reuse them so every
// provider reports the same text for the same kind of failure.
const (
	// MsgEmptyInput is reported when the input text is empty after trimming.
	MsgEmptyInput = "Please enter some text"

	// MsgNotConfigured is reported when the provider credential is missing.
	MsgNotConfigured = "Flashcard generation is not configured"

	// MsgGenerationFailed is reported for transport and upstream failures.
	MsgGenerationFailed = "Failed to generate flashcards"

	// MsgParseFailed is reported when the provider output is not valid JSON.
	MsgParseFailed = "Failed to parse flashcards from the AI response"

	// MsgNotAnArray is reported when the provider output is JSON but not an array.
	MsgNotAnArray = "The AI response was not a list of flashcards"

	// MsgNoValidCards is reported when no candidate survives validation.
	MsgNoValidCards = "No valid flashcards could be generated. Please try again with different text."
)
