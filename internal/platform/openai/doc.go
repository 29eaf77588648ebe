// Package openai provides a generation.Gateway over an OpenAI-compatible
// chat-completions endpoint. It speaks plain JSON over net/http so that any
// compatible server (OpenAI, a local inference server, an httptest fake) can
// be targeted through the base URL.
package openai
