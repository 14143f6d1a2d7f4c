package store

import (
	"context"

	"github.com/tofes-ai/docload/core"
)

// DocumentStore is the write target of ingestion. Implementations must be
// thread-safe: the orchestrator upserts from concurrent tasks.
//
// Semantics are at-least-once: there is no transactional guarantee across
// the documents of one source file, so a mid-run crash can leave a partial
// chunk set in the store. Dedup on the next run happens by identity, not
// by merge.
type DocumentStore interface {
	// Upsert inserts or replaces a document, keyed by its identity.
	Upsert(ctx context.Context, doc *core.Document) error

	// ListIdentities returns the identities of all stored documents. Used
	// by the orchestrator to exclude already-ingested files.
	ListIdentities(ctx context.Context) ([]string, error)

	// Close releases the underlying connections.
	Close() error
}
