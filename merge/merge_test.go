package merge

import (
	"fmt"
	"testing"
	"time"

	"invoiceradar/types"
)

func itemAt(title, url string, published time.Time) *types.Item {
	return &types.Item{
		ID:          types.GenerateID("test", url, published),
		Title:       title,
		Summary:     title,
		URL:         url,
		Source:      types.Source{ID: "test", Name: "Test", Kind: types.KindNews},
		Region:      "global",
		PublishedAt: published,
	}
}

func distinctItems(n int, base time.Time) []*types.Item {
	items := make([]*types.Item, 0, n)
	for i := 0; i < n; i++ {
		// Titles are built to stay far apart in similarity.
		title := fmt.Sprintf("%c%c%c story %d", 'A'+i%26, 'a'+(i*7)%26, 'a'+(i*13)%26, i)
		items = append(items, itemAt(title, fmt.Sprintf("https://example.com/item/%d", i), base.Add(-time.Duration(i)*time.Hour)))
	}
	return items
}

func TestMergeEmptyNewIsIdentity(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	existing := distinctItems(10, base)

	got := Merge(nil, existing, 500)
	if len(got) != len(existing) {
		t.Fatalf("expected %d items, got %d", len(existing), len(got))
	}
	for i := range existing {
		if got[i] != existing[i] {
			t.Fatalf("item %d altered by merge of empty input", i)
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	existing := distinctItems(20, base)

	once := Merge(nil, existing, 15)
	twice := Merge(nil, once, 15)

	if len(once) != len(twice) {
		t.Fatalf("merge drifted: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("merge drifted at index %d", i)
		}
	}
}

func TestMergeBound(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	newItems := distinctItems(30, base)
	existing := distinctItems(30, base.Add(-100*time.Hour))

	got := Merge(newItems, existing, 40)
	if len(got) > 40 {
		t.Fatalf("bound exceeded: %d items", len(got))
	}
}

func TestMergeOrderedByPublishedAtDesc(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	got := Merge(distinctItems(8, base), distinctItems(8, base.Add(-3*time.Hour+30*time.Minute)), 500)

	for i := 1; i < len(got); i++ {
		if got[i].PublishedAt.After(got[i-1].PublishedAt) {
			t.Fatalf("publishedAt not non-increasing at index %d", i)
		}
	}
}

func TestMergeNewRepresentationWins(t *testing.T) {
	published := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	old := itemAt("Qatar GTA announces e-invoicing framework", "https://example.com/qatar", published)
	old.Summary = "stale summary"
	fresh := itemAt("Qatar GTA announces e-invoicing framework", "https://example.com/qatar", published)
	fresh.Summary = "updated summary"

	got := Merge([]*types.Item{fresh}, []*types.Item{old}, 500)
	if len(got) != 1 {
		t.Fatalf("expected single item, got %d", len(got))
	}
	if got[0].Summary != "updated summary" {
		t.Fatal("merge must keep the freshly crawled representation")
	}
}

func TestMergeTruncatesOldest(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	items := distinctItems(10, base)

	got := Merge(items, nil, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	// distinctItems generates newest-first, so the survivors are the first five.
	for i := 0; i < 5; i++ {
		if got[i] != items[i] {
			t.Fatalf("expected newest items to survive truncation, index %d", i)
		}
	}
}
