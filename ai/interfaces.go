package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as
	// the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Translator translates text into the configured target language.
// Implementations must be thread-safe for concurrent use.
type Translator interface {
	// Translate translates source text, preserving markdown structure.
	// Errors propagate to the caller: translation is load-bearing for the
	// summary field, and a silent failure would persist untranslated text
	// mislabeled as translated.
	Translate(ctx context.Context, text string) (string, error)
}
