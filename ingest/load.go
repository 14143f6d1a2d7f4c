package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tofes-ai/docload/core"
	"github.com/tofes-ai/docload/store"
)

// LoadProcessor reads persisted Documents from disk and upserts them into
// the document store. Upsert keys on identity, so re-running a load after a
// partial failure is safe.
type LoadProcessor struct {
	store  store.DocumentStore
	logger *slog.Logger
}

// NewLoadProcessor creates a load processor writing to the given store.
func NewLoadProcessor(s store.DocumentStore) *LoadProcessor {
	return &LoadProcessor{
		store:  s,
		logger: slog.Default().With("component", "load-processor"),
	}
}

// Process loads one document file and writes it to the store.
func (p *LoadProcessor) Process(ctx context.Context, path string) error {
	doc, err := core.Load(path)
	if err != nil {
		return err
	}

	if err := p.store.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("failed to store document %s: %w", doc.Identity(), err)
	}

	p.logger.Debug("stored document", "identity", doc.Identity())
	return nil
}
