// Package openai implements the ai interfaces against OpenAI-compatible
// APIs via langchaingo: embeddings through the embeddings endpoint and
// translation through chat completions.
package openai
