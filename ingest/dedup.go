package ingest

import (
	"context"
	"fmt"
	"log/slog"
)

// DedupStrategy controls what happens when the list of already-ingested
// identities cannot be fetched.
type DedupStrategy int

const (
	// FailOpen processes everything when the identity listing fails. The
	// store upserts by identity, so the worst case is rewriting rows that
	// were already there. Default.
	FailOpen DedupStrategy = iota

	// FailClosed aborts the run when the identity listing fails. For runs
	// where duplicate API spend matters more than completing the batch.
	FailClosed
)

// IdentityLister reports which document identities already exist
// downstream. store.DocumentStore satisfies it.
type IdentityLister interface {
	ListIdentities(ctx context.Context) ([]string, error)
}

// FilterIngested removes files whose identity is already present
// downstream. On a listing failure the strategy decides: FailOpen logs a
// warning and returns all files, FailClosed returns the error.
func FilterIngested(ctx context.Context, files []string, lister IdentityLister, strategy DedupStrategy) ([]string, error) {
	identities, err := lister.ListIdentities(ctx)
	if err != nil {
		if strategy == FailClosed {
			return nil, fmt.Errorf("failed to list ingested documents: %w", err)
		}
		slog.Warn("failed to list ingested documents, processing all files", "err", err)
		return files, nil
	}

	ingested := make(map[string]struct{}, len(identities))
	for _, id := range identities {
		ingested[id] = struct{}{}
	}

	var fresh []string
	for _, file := range files {
		if _, ok := ingested[identity(file)]; !ok {
			fresh = append(fresh, file)
		}
	}
	return fresh, nil
}
