// Copyright 2025 Tofes AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import "errors"

// Embedding model dimensionalities. The zero-vector sentinel and the store
// schema both depend on the configured model's dimensionality being exact.
const (
	DimensionsLarge = 3072 // text-embedding-3-large
	DimensionsSmall = 1536 // text-embedding-3-small
)

// Config holds configuration for the AI service clients.
type Config struct {
	// APIKey authenticates against the OpenAI-compatible API. When empty,
	// the client falls back to the OPENAI_API_KEY environment variable.
	APIKey string

	// BaseURL overrides the API endpoint, e.g. for a local
	// OpenAI-compatible server. Empty means the provider default.
	BaseURL string

	// EmbeddingModel is the model identifier for text embeddings.
	// Example: "text-embedding-3-large", "text-embedding-3-small"
	EmbeddingModel string

	// Dimensions is the embedding vector length. Derived from
	// EmbeddingModel when left zero.
	Dimensions int

	// ChatModel is the model identifier used for translation.
	// Example: "gpt-4", "gpt-4o-mini"
	ChatModel string

	// TargetLanguage is the language translations are produced in.
	// Default: "Hebrew"
	TargetLanguage string

	// Temperature for the translation chat completion. Default: 0.3
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithEmbeddingModel sets the embedding model identifier and resets the
// dimensionality so it is re-derived from the model name.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
		c.Dimensions = 0
	}
}

// WithDimensions sets the embedding dimensionality explicitly.
func WithDimensions(dims int) ConfigOption {
	return func(c *Config) {
		c.Dimensions = dims
	}
}

// WithChatModel sets the chat model used for translation.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithTargetLanguage sets the translation target language.
func WithTargetLanguage(lang string) ConfigOption {
	return func(c *Config) {
		c.TargetLanguage = lang
	}
}

// DefaultConfig returns a Config with the defaults the original corpus was
// ingested with: the large embedding model and Hebrew translations.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingModel: "text-embedding-3-large",
		Dimensions:     DimensionsLarge,
		ChatModel:      "gpt-4",
		TargetLanguage: "Hebrew",
		Temperature:    0.3,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// DimensionsFor returns the dimensionality of a known embedding model, or
// zero for unknown models.
func DimensionsFor(model string) int {
	switch model {
	case "text-embedding-3-large":
		return DimensionsLarge
	case "text-embedding-3-small", "text-embedding-ada-002":
		return DimensionsSmall
	default:
		return 0
	}
}

// Normalize ensures the configuration is in a canonical form, deriving the
// embedding dimensionality from the model name when unset.
func (c *Config) Normalize() {
	if c.Dimensions == 0 {
		c.Dimensions = DimensionsFor(c.EmbeddingModel)
	}
}

// Validate checks that the configuration is valid and complete. It
// normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.Dimensions <= 0 {
		return errors.New("ai config: Dimensions is required for unknown embedding models")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.TargetLanguage == "" {
		return errors.New("ai config: TargetLanguage is required")
	}
	return nil
}
