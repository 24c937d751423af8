// Package dedup collapses exact and near-duplicate items. Exact checks
// (seen URLs and content fingerprints) run first in O(1); only survivors
// pay for the O(n) fuzzy title scan against already-accepted items.
package dedup

import "invoiceradar/types"

// DefaultSimilarityThreshold is the minimum Ratio at which two titles are
// treated as the same story.
const DefaultSimilarityThreshold = 0.85

// Deduplicate removes duplicates with the default similarity threshold.
func Deduplicate(items []*types.Item) []*types.Item {
	return DeduplicateThreshold(items, DefaultSimilarityThreshold)
}

// DeduplicateThreshold returns a subsequence of items with no two entries
// considered duplicates. The first occurrence wins; later duplicates are
// discarded regardless of payload. Relative order of retained items is
// preserved.
func DeduplicateThreshold(items []*types.Item, threshold float64) []*types.Item {
	unique := make([]*types.Item, 0, len(items))
	if len(items) == 0 {
		return unique
	}

	seenURLs := make(map[string]struct{}, len(items))
	seenHashes := make(map[string]struct{}, len(items))

	for _, item := range items {
		key := NormalizeKey(item.URL)
		if _, ok := seenURLs[key]; ok {
			continue
		}

		fp := Fingerprint(item.Title, item.URL)
		if _, ok := seenHashes[fp]; ok {
			continue
		}

		duplicate := false
		for _, kept := range unique {
			if Ratio(item.Title, kept.Title) >= threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		seenURLs[key] = struct{}{}
		seenHashes[fp] = struct{}{}
		unique = append(unique, item)
	}

	return unique
}
