package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tofes-ai/docload/ai/mock"
	"github.com/tofes-ai/docload/core"
)

func TestSplitStem(t *testing.T) {
	tests := []struct {
		stem string
		base string
		page int
	}{
		{"guide_12", "guide", 12},
		{"expense_form_3", "expense_form", 3},
		{"guide", "guide", 0},
		{"guide_", "guide_", 0},
		{"7", "7", 0},
	}

	for _, tt := range tests {
		base, page := splitStem(tt.stem)
		assert.Equal(t, tt.base, base, tt.stem)
		assert.Equal(t, tt.page, page, tt.stem)
	}
}

func TestTranslateProcessor(t *testing.T) {
	inDir, outDir, mdDir := t.TempDir(), t.TempDir(), t.TempDir()
	path := writeSource(t, inDir, "form_2.json",
		`{"text": "raw page text", "entities": [{"type": "summary", "text": "English summary"}]}`)

	translator := mock.NewMockTranslator()
	proc := NewTranslateProcessor(translator, mock.NewMockEmbedder(), outDir, mdDir)

	require.NoError(t, proc.Process(context.Background(), path))

	doc, err := core.Load(filepath.Join(outDir, "form_2.json"))
	require.NoError(t, err)

	assert.Equal(t, "form", doc.FileName)
	assert.Equal(t, 2, doc.Page)
	assert.Equal(t, "[translated] English summary", *doc.Summary)
	assert.Equal(t, "raw page text", doc.Content)
	assert.Nil(t, doc.Title)
	assert.Len(t, doc.Embedding, mock.DefaultDimensions)
	assert.Equal(t, 1, translator.CallCount())
}

func TestTranslateProcessorNoEntities(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	path := writeSource(t, inDir, "form_3.json", `{"text": "raw page text", "entities": []}`)

	translator := mock.NewMockTranslator()
	proc := NewTranslateProcessor(translator, mock.NewMockEmbedder(), outDir, "")

	require.NoError(t, proc.Process(context.Background(), path))

	doc, err := core.Load(filepath.Join(outDir, "form_3.json"))
	require.NoError(t, err)

	assert.Nil(t, doc.Summary)
	assert.Equal(t, 0, translator.CallCount())
}

func TestTranslateProcessorTranslationErrorPropagates(t *testing.T) {
	inDir := t.TempDir()
	path := writeSource(t, inDir, "form_1.json",
		`{"text": "raw", "entities": [{"type": "summary", "text": "English"}]}`)

	translateErr := errors.New("model overloaded")
	translator := mock.NewMockTranslator()
	translator.TranslateFunc = func(ctx context.Context, text string) (string, error) {
		return "", translateErr
	}
	proc := NewTranslateProcessor(translator, mock.NewMockEmbedder(), t.TempDir(), "")

	err := proc.Process(context.Background(), path)
	assert.ErrorIs(t, err, translateErr)
}

func TestTranslateProcessorEmbeddingErrorPropagates(t *testing.T) {
	inDir := t.TempDir()
	path := writeSource(t, inDir, "form_1.json",
		`{"text": "raw", "entities": [{"type": "summary", "text": "English"}]}`)

	embedErr := errors.New("rate limited")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, embedErr
	}
	proc := NewTranslateProcessor(mock.NewMockTranslator(), embedder, t.TempDir(), "")

	err := proc.Process(context.Background(), path)
	assert.ErrorIs(t, err, embedErr)
}
