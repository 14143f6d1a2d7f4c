package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tofes-ai/docload/ai"
	"github.com/tofes-ai/docload/ai/mock"
	"github.com/tofes-ai/docload/chunker"
	"github.com/tofes-ai/docload/core"
)

// wordCounter approximates one token per word so test arithmetic stays
// readable.
func wordCounter() *chunker.Counter {
	return chunker.NewCounterWithEncoder(func(text string) int {
		return len(strings.Fields(text))
	})
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestChunkProcessorSingleChunk(t *testing.T) {
	inDir, outDir, mdDir := t.TempDir(), t.TempDir(), t.TempDir()
	path := writeSource(t, inDir, "guide.json",
		`{"file_name": "guide.pdf", "title": "Guide", "url": "https://example.org", "content": "Hello world. This is a test.", "entities": []}`)

	counter := wordCounter()
	embedder := ai.NewFallbackEmbedder(mock.NewMockEmbedder(), 16)
	proc := NewChunkProcessor(counter, embedder, outDir, mdDir, 1000)

	require.NoError(t, proc.Process(context.Background(), path))

	doc, err := core.Load(filepath.Join(outDir, "guide_chunk_1_1.json"))
	require.NoError(t, err)

	assert.Equal(t, "guide_chunk_1", doc.FileName)
	assert.Equal(t, 1, doc.Page)
	assert.Equal(t, "Guide", *doc.Title)
	assert.Equal(t, "", *doc.Summary)
	assert.Equal(t, "Hello world. This is a test.", doc.Content)
	assert.Equal(t, "https://example.org", *doc.URL)
	assert.Equal(t, float64(1), doc.Metadata[core.MetaTotalChunks])
	assert.Equal(t, float64(1000), doc.Metadata[core.MetaChunkSize])
	assert.Equal(t, "guide.pdf", doc.Metadata[core.MetaOriginalFilename])
	assert.Equal(t, core.Checksum(doc.Content), doc.Metadata[core.MetaChecksum])
	assert.Len(t, doc.Embedding, mock.DefaultDimensions)
	assert.NotContains(t, doc.Metadata, core.MetaEmbeddingError)

	// Markdown rendering lands next to the JSON.
	md, err := os.ReadFile(filepath.Join(mdDir, "guide_chunk_1_1.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "Hello world. This is a test.")

	assert.Equal(t, int64(1), counter.TotalChunks())
}

func TestChunkProcessorMultipleChunks(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	path := writeSource(t, inDir, "long.json",
		`{"file_name": "long.pdf", "content": "One two three four. Five six seven eight. Nine ten.", "entities": []}`)

	proc := NewChunkProcessor(wordCounter(), ai.NewFallbackEmbedder(mock.NewMockEmbedder(), 16), outDir, "", 5)

	require.NoError(t, proc.Process(context.Background(), path))

	first, err := core.Load(filepath.Join(outDir, "long_chunk_1_1.json"))
	require.NoError(t, err)
	second, err := core.Load(filepath.Join(outDir, "long_chunk_2_2.json"))
	require.NoError(t, err)
	third, err := core.Load(filepath.Join(outDir, "long_chunk_3_3.json"))
	require.NoError(t, err)

	assert.Equal(t, "One two three four.", first.Content)
	assert.Equal(t, "Five six seven eight.", second.Content)
	assert.Equal(t, "Nine ten.", third.Content)
	assert.Equal(t, float64(3), first.Metadata[core.MetaTotalChunks])
	assert.Equal(t, 2, second.Page)
}

func TestChunkProcessorEmptyContent(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	path := writeSource(t, inDir, "empty.json", `{"file_name": "empty.pdf", "content": "", "entities": []}`)

	proc := NewChunkProcessor(wordCounter(), ai.NewFallbackEmbedder(mock.NewMockEmbedder(), 16), outDir, "", 1000)

	require.NoError(t, proc.Process(context.Background(), path))

	// An empty body still produces one document so the file counts as
	// ingested.
	doc, err := core.Load(filepath.Join(outDir, "empty_chunk_1_1.json"))
	require.NoError(t, err)
	assert.Equal(t, "", doc.Content)
	assert.Equal(t, float64(1), doc.Metadata[core.MetaTotalChunks])
}

func TestChunkProcessorEmbeddingFallback(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	path := writeSource(t, inDir, "guide.json", `{"file_name": "guide.pdf", "content": "Hello world.", "entities": []}`)

	inner := mock.NewMockEmbedder()
	inner.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("rate limited")
	}
	proc := NewChunkProcessor(wordCounter(), ai.NewFallbackEmbedder(inner, 16), outDir, "", 1000)

	require.NoError(t, proc.Process(context.Background(), path))

	doc, err := core.Load(filepath.Join(outDir, "guide_chunk_1_1.json"))
	require.NoError(t, err)

	assert.Len(t, doc.Embedding, 16)
	for _, v := range doc.Embedding {
		assert.Zero(t, v)
	}
	assert.Equal(t, true, doc.Metadata[core.MetaEmbeddingError])
}

func TestChunkProcessorMalformedSource(t *testing.T) {
	inDir := t.TempDir()
	path := writeSource(t, inDir, "bad.json", "{not json")

	proc := NewChunkProcessor(wordCounter(), ai.NewFallbackEmbedder(mock.NewMockEmbedder(), 16), t.TempDir(), "", 1000)

	err := proc.Process(context.Background(), path)
	assert.ErrorIs(t, err, ErrMalformedSource)
}
