// Package gemini provides an implementation of the generation.Gateway interface
// that uses Google's Gemini API to turn a prompt into raw flashcard JSON.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the generation pipeline to Google's external Gemini AI service
// without exposing the details of the service to the core application.
//
// The gateway performs exactly one GenerateContent call per request and
// classifies every failure as a *domain.Error:
//
//   - a missing API key is a configuration error, reported without a network call
//   - a genai.APIError or a malformed response envelope is an upstream error
//     carrying the provider message and HTTP status
//   - a network failure or cancelled context is a transport error
package gemini
