// Package generation turns free-form study text into validated flashcards.
//
// The work is split into independent stages composed by Pipeline:
//
//	NormalizeText -> PromptBuilder -> Gateway -> ParseCandidates -> ValidateCandidates
//
// Each stage either returns its value or a *domain.Error, and the first
// failure aborts the remaining stages. Gateway is the port to the external
// LLM service; adapters live under internal/platform (Gemini, OpenAI).
package generation
