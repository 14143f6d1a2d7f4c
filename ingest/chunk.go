package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/tofes-ai/docload/ai"
	"github.com/tofes-ai/docload/chunker"
	"github.com/tofes-ai/docload/core"
)

// EmbedTokenLimit is the input ceiling of the OpenAI embedding API. Chunks
// over it still get sent (the API truncates), but they are logged so the
// chunk size can be tuned down.
const EmbedTokenLimit = 8192

// ChunkProcessor splits a source file's body into token-budgeted chunks and
// persists one embedded Document per chunk.
//
// Embedding uses the zero-vector fallback: a failed chunk is persisted with
// a zero vector and an embedding_error metadata flag instead of failing the
// file, so a long run is never starved by a flaky embedding API. Re-running
// the embed later finds the flagged documents by their metadata.
type ChunkProcessor struct {
	splitter    *chunker.Splitter
	counter     *chunker.Counter
	embedder    *ai.FallbackEmbedder
	outputDir   string
	markdownDir string
	chunkSize   int
	logger      *slog.Logger
}

// NewChunkProcessor creates a chunk processor. markdownDir may equal
// outputDir; the two renderings use distinct extensions.
func NewChunkProcessor(counter *chunker.Counter, embedder *ai.FallbackEmbedder, outputDir, markdownDir string, chunkSize int) *ChunkProcessor {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	return &ChunkProcessor{
		splitter:    chunker.NewSplitter(counter),
		counter:     counter,
		embedder:    embedder,
		outputDir:   outputDir,
		markdownDir: markdownDir,
		chunkSize:   chunkSize,
		logger:      slog.Default().With("component", "chunk-processor"),
	}
}

// Process reads one source JSON file, splits it and writes the resulting
// documents to disk.
func (p *ChunkProcessor) Process(ctx context.Context, path string) error {
	src, err := ReadSourceFile(path)
	if err != nil {
		return err
	}

	chunks := p.splitter.Split(src.Body(), p.chunkSize)
	if len(chunks) == 0 {
		// An empty body still yields one (empty) document so the file is
		// marked ingested and not retried forever.
		chunks = []string{""}
	}

	originalName := src.FileName
	if originalName == "" {
		originalName = filepath.Base(path)
	}
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))

	for i, chunk := range chunks {
		ordinal := i + 1
		summary := ""
		tokens := p.counter.Count(chunk)

		doc := &core.Document{
			FileName: fmt.Sprintf("%s_chunk_%d", base, ordinal),
			Page:     ordinal,
			Title:    src.Title,
			Summary:  &summary,
			Content:  chunk,
			URL:      src.URL,
			Metadata: map[string]any{
				core.MetaOriginalFilename: originalName,
				core.MetaTotalChunks:      len(chunks),
				core.MetaChunkSize:        p.chunkSize,
				core.MetaTokens:           tokens,
				core.MetaChecksum:         core.Checksum(chunk),
			},
			Embedding: []float32{},
		}

		vec, ok := p.embedder.Embed(ctx, doc.Markdown())
		doc.Embedding = vec
		if !ok {
			doc.Metadata[core.MetaEmbeddingError] = true
		}

		if tokens > EmbedTokenLimit {
			p.logger.Warn("chunk exceeds embedding API token limit", "file", path, "chunk", ordinal, "tokens", tokens)
		}
		p.counter.Record(tokens)

		if err := doc.Save(p.outputDir); err != nil {
			return err
		}
		if p.markdownDir != "" {
			if err := doc.SaveMarkdown(p.markdownDir); err != nil {
				return err
			}
		}
	}

	p.logger.Info("processed file", "file", filepath.Base(path), "chunks", len(chunks))
	return nil
}
