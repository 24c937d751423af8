package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// SourceKind classifies where an item came from.
type SourceKind string

const (
	KindOfficial   SourceKind = "official"
	KindAdvisory   SourceKind = "advisory"
	KindVendor     SourceKind = "vendor"
	KindNews       SourceKind = "news"
	KindAggregator SourceKind = "aggregator"
	KindSocial     SourceKind = "social"
)

// Source identifies the site an item was collected from.
type Source struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Kind SourceKind `json:"kind"`
}

// Item represents a single aggregated news record. Items are immutable once
// created; CrawledAt is stamped by the orchestrator, not by adapters.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	Source      Source    `json:"source"`
	Region      string    `json:"region"`
	Country     string    `json:"country,omitempty"`
	CountryName string    `json:"countryName,omitempty"`
	Categories  []string  `json:"categories"`
	PublishedAt time.Time `json:"publishedAt"`
	CrawledAt   time.Time `json:"crawledAt"`
}

// GenerateID creates a stable item ID from source, URL and publication day.
// The same logical item fetched twice on the same day yields the same ID,
// across runs and process restarts.
func GenerateID(sourceID, rawURL string, publishedAt time.Time) string {
	sum := sha256.Sum256([]byte(rawURL))
	short := hex.EncodeToString(sum[:])[:8]

	if publishedAt.IsZero() {
		return fmt.Sprintf("%s-%s", sourceID, short)
	}
	return fmt.Sprintf("%s-%s-%s", sourceID, publishedAt.UTC().Format("2006-01-02"), short)
}

// ValidURL reports whether a URL is usable for an item: absolute, http or
// https, with a host that contains a dot. Rejects javascript:, mailto:,
// tel:, void( pseudo-links and fragment-only references.
func ValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "#") {
		return false
	}
	for _, marker := range []string{"javascript:", "mailto:", "tel:", "void("} {
		if strings.Contains(lower, marker) {
			return false
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && strings.Contains(u.Host, ".")
}

// NormalizeCategories removes duplicates, preserves order and caps the list
// at two entries.
func NormalizeCategories(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, 2)
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
		if len(out) == 2 {
			break
		}
	}
	return out
}
