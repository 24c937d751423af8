// Package store persists and retrieves the aggregated news corpus.
package store

import (
	"context"

	"invoiceradar/types"
)

// Store is the persistence boundary for the corpus. Implementations must
// return an empty corpus (not an error) when no corpus has been saved yet.
type Store interface {
	// Load reads the most recently saved corpus.
	Load(ctx context.Context) (*types.Corpus, error)
	// Save atomically replaces the stored corpus.
	Save(ctx context.Context, corpus *types.Corpus) error
}
