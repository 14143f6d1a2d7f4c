package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "text-embedding-3-large", cfg.EmbeddingModel)
	assert.Equal(t, DimensionsLarge, cfg.Dimensions)
	assert.Equal(t, "gpt-4", cfg.ChatModel)
	assert.Equal(t, "Hebrew", cfg.TargetLanguage)
	assert.InDelta(t, 0.3, cfg.Temperature, 0.001)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithAPIKey("sk-test"),
		WithBaseURL("http://localhost:11434/v1"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithChatModel("gpt-4o-mini"),
		WithTargetLanguage("Arabic"),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.BaseURL)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, DimensionsSmall, cfg.Dimensions, "dimensions re-derived from the model")
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, "Arabic", cfg.TargetLanguage)
}

func TestDimensionsFor(t *testing.T) {
	assert.Equal(t, 3072, DimensionsFor("text-embedding-3-large"))
	assert.Equal(t, 1536, DimensionsFor("text-embedding-3-small"))
	assert.Equal(t, 1536, DimensionsFor("text-embedding-ada-002"))
	assert.Equal(t, 0, DimensionsFor("some-unknown-model"))
}

func TestValidateUnknownModelRequiresDimensions(t *testing.T) {
	cfg := NewConfig(WithEmbeddingModel("custom-embedder"))
	require.Error(t, cfg.Validate())

	cfg = NewConfig(WithEmbeddingModel("custom-embedder"), WithDimensions(768))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 768, cfg.Dimensions)
}

func TestValidateMissingFields(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg = &Config{EmbeddingModel: "text-embedding-3-large", ChatModel: ""}
	assert.Error(t, cfg.Validate())

	cfg = &Config{EmbeddingModel: "text-embedding-3-large", ChatModel: "gpt-4"}
	assert.Error(t, cfg.Validate(), "target language required")
}
