// Package merge combines freshly crawled items with the previously
// persisted corpus into a new canonical, bounded corpus.
package merge

import (
	"sort"

	"invoiceradar/dedup"
	"invoiceradar/types"
)

// DefaultMaxItems bounds the corpus to a rolling window of recent items.
const DefaultMaxItems = 500

// Merge combines new and existing items with the default similarity
// threshold. Deterministic given its inputs, and safe to re-run:
// Merge(nil, existing, max) returns existing unchanged in content.
func Merge(newItems, existing []*types.Item, maxSize int) []*types.Item {
	return WithThreshold(newItems, existing, maxSize, dedup.DefaultSimilarityThreshold)
}

// WithThreshold concatenates new items ahead of existing ones, so that when
// two representations of the same story survive to the fuzzy check the
// fresher one is kept. The combined list is deduplicated, stable-sorted by
// publication time descending and truncated to maxSize. Truncation silently
// drops the oldest items; the corpus is a rolling window, not an archive.
func WithThreshold(newItems, existing []*types.Item, maxSize int, threshold float64) []*types.Item {
	combined := make([]*types.Item, 0, len(newItems)+len(existing))
	combined = append(combined, newItems...)
	combined = append(combined, existing...)

	unique := dedup.DeduplicateThreshold(combined, threshold)

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].PublishedAt.After(unique[j].PublishedAt)
	})

	if maxSize > 0 && len(unique) > maxSize {
		unique = unique[:maxSize]
	}
	return unique
}
