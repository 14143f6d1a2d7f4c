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


package openai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/tofes-ai/docload/ai"
)

// Translator implements ai.Translator using OpenAI-compatible chat APIs.
type Translator struct {
	client      llms.Model
	prompt      string
	temperature float64
	logger      *slog.Logger
}

// newTranslator is an internal constructor that returns the concrete type.
func newTranslator(config *ai.Config) (*Translator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithModel(config.ChatModel),
	}
	if config.APIKey != "" {
		opts = append(opts, openai.WithToken(config.APIKey))
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Translator{
		client:      client,
		prompt:      buildTranslatorPrompt(config.TargetLanguage),
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-translator"),
	}, nil
}

// NewTranslator creates a new translator using the provided configuration.
//
// Returns ai.Translator interface to enforce abstraction.
func NewTranslator(config *ai.Config) (ai.Translator, error) {
	return newTranslator(config)
}

// Translate translates text into the configured target language using a
// chat completion with a fixed translator instruction. Errors propagate:
// there is no local fallback for translation.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(t.prompt),
			},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(t.temperature))
	if err != nil {
		t.logger.Error("translation request failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", ErrNoTranslation
	}

	return response.Choices[0].Content, nil
}
