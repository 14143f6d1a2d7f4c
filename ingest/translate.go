package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/tofes-ai/docload/ai"
	"github.com/tofes-ai/docload/core"
)

// stemPattern captures a page-qualified stem: "{base}_{page}".
var stemPattern = regexp.MustCompile(`(.+)_(\d+)$`)

// splitStem extracts the base name and page number from a file stem.
// A stem without a trailing page ordinal maps to page 0.
func splitStem(stem string) (string, int) {
	m := stemPattern.FindStringSubmatch(stem)
	if m == nil {
		return stem, 0
	}
	page, err := strconv.Atoi(m[2])
	if err != nil {
		return stem, 0
	}
	return m[1], page
}

// TranslateProcessor builds one Document per source file: the extracted
// summary entity is translated into the target language and stored as the
// document summary, with the raw page text as content.
//
// Unlike chunking, embedding here is strict. Translation and embedding
// failures propagate so the pipeline retries the file; persisting a
// document whose summary is silently untranslated would poison the search
// index.
type TranslateProcessor struct {
	translator  ai.Translator
	embedder    ai.Embedder
	outputDir   string
	markdownDir string
	logger      *slog.Logger
}

// NewTranslateProcessor creates a translate processor.
func NewTranslateProcessor(translator ai.Translator, embedder ai.Embedder, outputDir, markdownDir string) *TranslateProcessor {
	return &TranslateProcessor{
		translator:  translator,
		embedder:    embedder,
		outputDir:   outputDir,
		markdownDir: markdownDir,
		logger:      slog.Default().With("component", "translate-processor"),
	}
}

// Process reads one parsed page file, translates its summary entity and
// writes the embedded document to disk.
func (p *TranslateProcessor) Process(ctx context.Context, path string) error {
	src, err := ReadSourceFile(path)
	if err != nil {
		return err
	}

	base, page := splitStem(identity(path))

	var summary *string
	if text := src.SummaryText(); text != "" {
		translated, err := p.translator.Translate(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to translate %s: %w", filepath.Base(path), err)
		}
		summary = &translated
	} else {
		p.logger.Warn("no text to translate", "file", filepath.Base(path))
	}

	doc := &core.Document{
		FileName: base,
		Page:     page,
		Summary:  summary,
		Content:  src.RawText(),
		Metadata: map[string]any{
			core.MetaSource: filepath.Base(path),
		},
		Embedding: []float32{},
	}

	embedding, err := p.embedder.EmbedText(ctx, doc.Markdown())
	if err != nil {
		return fmt.Errorf("failed to embed %s: %w", doc.Identity(), err)
	}
	doc.Embedding = embedding

	if err := doc.Save(p.outputDir); err != nil {
		return err
	}
	if p.markdownDir != "" {
		if err := doc.SaveMarkdown(p.markdownDir); err != nil {
			return err
		}
	}

	p.logger.Info("processed file", "file", filepath.Base(path))
	return nil
}
