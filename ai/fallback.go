package ai

import (
	"context"
	"log/slog"
)

// FallbackEmbedder wraps an Embedder so that failures degrade to a zero
// vector instead of propagating. The zero vector is a valid in-band
// sentinel downstream ("needs re-embedding"), and the boolean result makes
// the failure explicit in-process so callers can flag it in metadata
// rather than conflating it with a legitimate embedding of degenerate
// input.
type FallbackEmbedder struct {
	inner      Embedder
	dimensions int
	logger     *slog.Logger
}

// NewFallbackEmbedder wraps inner with zero-vector fallback at the given
// dimensionality.
func NewFallbackEmbedder(inner Embedder, dimensions int) *FallbackEmbedder {
	return &FallbackEmbedder{
		inner:      inner,
		dimensions: dimensions,
		logger:     slog.Default().With("component", "fallback-embedder"),
	}
}

// Embed generates an embedding for text. On failure it logs the error and
// returns a zero vector of the configured dimensionality with ok=false;
// it never returns an error.
func (f *FallbackEmbedder) Embed(ctx context.Context, text string) (vec []float32, ok bool) {
	embedding, err := f.inner.EmbedText(ctx, text)
	if err != nil {
		f.logger.Error("embedding failed, substituting zero vector", "err", err)
		return make([]float32, f.dimensions), false
	}
	return embedding, true
}

// Dimensions returns the configured vector length.
func (f *FallbackEmbedder) Dimensions() int {
	return f.dimensions
}
