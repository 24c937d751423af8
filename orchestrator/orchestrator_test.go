package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"invoiceradar/config"
	"invoiceradar/sources"
	"invoiceradar/types"
)

type fakeAdapter struct {
	id    string
	items []*types.Item
	err   error
	panic bool
}

func (f *fakeAdapter) SourceID() string             { return f.id }
func (f *fakeAdapter) SourceName() string           { return f.id }
func (f *fakeAdapter) SourceKind() types.SourceKind { return types.KindNews }

func (f *fakeAdapter) Crawl(context.Context) ([]*types.Item, error) {
	if f.panic {
		panic("adapter exploded")
	}
	return f.items, f.err
}

type memStore struct {
	corpus  *types.Corpus
	saveErr error
	saves   int
}

func (m *memStore) Load(context.Context) (*types.Corpus, error) {
	if m.corpus == nil {
		return types.EmptyCorpus(), nil
	}
	return m.corpus, nil
}

func (m *memStore) Save(_ context.Context, c *types.Corpus) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.corpus = c
	return nil
}

func newsItem(source, slug, title string, published time.Time) *types.Item {
	url := fmt.Sprintf("https://%s.example.com/%s", source, slug)
	return &types.Item{
		ID:          types.GenerateID(source, url, published),
		Title:       title,
		Summary:     "summary",
		URL:         url,
		Source:      types.Source{ID: source, Name: source, Kind: types.KindNews},
		Region:      "global",
		Categories:  []string{"update"},
		PublishedAt: published,
	}
}

// bulkTitles are pairwise dissimilar so fuzzy dedup never collapses them.
var bulkTitles = []string{
	"Qatar opens consultation on e-invoicing framework",
	"Belgium mandates structured invoices for B2B trade",
	"Kenya updates TIMS device specifications",
	"Singapore expands InvoiceNow to government suppliers",
	"Brazil consolidates NF-e layouts under tax reform",
	"Poland publishes KSeF technical documentation",
	"Malaysia extends MyInvois grace period",
	"Germany clarifies XRechnung usage for municipalities",
	"Spain finalizes Verifactu software requirements",
	"Egypt onboards new taxpayer segments to e-receipts",
}

func testCfg() config.Config {
	return config.Config{
		MaxItems:            500,
		Workers:             3,
		SimilarityThreshold: 0.85,
	}
}

func TestCrawlAllIsolatesFailures(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	adapters := []sources.Adapter{
		&fakeAdapter{id: "good", items: []*types.Item{
			newsItem("good", "one", bulkTitles[0], base),
			newsItem("good", "two", bulkTitles[1], base.Add(-time.Hour)),
			newsItem("good", "three", bulkTitles[2], base.Add(-2*time.Hour)),
		}},
		&fakeAdapter{id: "broken", err: errors.New("connection refused")},
		&fakeAdapter{id: "crashy", panic: true},
	}

	o := New(testCfg(), adapters, &memStore{})
	items, outcomes := o.CrawlAll(context.Background())

	if len(items) != 3 {
		t.Fatalf("expected 3 items from the healthy adapter, got %d", len(items))
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}

	byID := make(map[string]Outcome)
	for _, out := range outcomes {
		byID[out.SourceID] = out
	}
	if byID["good"].Err != nil || byID["good"].Items != 3 {
		t.Errorf("good adapter outcome: %+v", byID["good"])
	}
	if byID["broken"].Err == nil {
		t.Error("broken adapter should report its error")
	}
	if byID["crashy"].Err == nil {
		t.Error("panicking adapter should report an error, not crash the run")
	}
}

func TestCrawlAllDropsInvalidURLs(t *testing.T) {
	published := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	bad := newsItem("mixed", "bad", bulkTitles[0], published)
	bad.URL = "javascript:void(0)"

	adapters := []sources.Adapter{
		&fakeAdapter{id: "mixed", items: []*types.Item{newsItem("mixed", "ok", bulkTitles[1], published), bad}},
	}

	o := New(testCfg(), adapters, &memStore{})
	items, outcomes := o.CrawlAll(context.Background())

	if len(items) != 1 {
		t.Fatalf("expected invalid URL to be dropped, got %d items", len(items))
	}
	if outcomes[0].Dropped != 1 {
		t.Errorf("dropped count: %d", outcomes[0].Dropped)
	}
	if items[0].CrawledAt.IsZero() {
		t.Error("crawledAt must be stamped at collection time")
	}
}

func TestRunOnceSuccessDespiteAdapterFailures(t *testing.T) {
	st := &memStore{}
	adapters := []sources.Adapter{
		&fakeAdapter{id: "down", err: errors.New("503")},
		&fakeAdapter{id: "alsodown", panic: true},
	}

	o := New(testCfg(), adapters, st)
	if err := o.RunOnce(context.Background()); err != nil {
		t.Fatalf("a run with only adapter failures must still succeed: %v", err)
	}
	if st.corpus == nil || st.corpus.RunStatus != types.RunSuccess {
		t.Fatalf("expected success corpus, got %+v", st.corpus)
	}
}

func TestRunOnceMergesWithPrior(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	old := newsItem("archive", "old", bulkTitles[3], base.Add(-48*time.Hour))
	lastRun := base.Add(-24 * time.Hour)
	st := &memStore{corpus: &types.Corpus{
		LastUpdated: &lastRun,
		RunStatus:   types.RunSuccess,
		TotalItems:  1,
		Items:       []*types.Item{old},
	}}

	adapters := []sources.Adapter{
		&fakeAdapter{id: "fresh", items: []*types.Item{newsItem("fresh", "new", bulkTitles[4], base)}},
	}

	o := New(testCfg(), adapters, st)
	if err := o.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if st.corpus.TotalItems != 2 || len(st.corpus.Items) != 2 {
		t.Fatalf("expected merged corpus of 2, got %+v", st.corpus)
	}
	// Newest first.
	if st.corpus.Items[0].Source.ID != "fresh" {
		t.Errorf("expected fresh item first, got %s", st.corpus.Items[0].ID)
	}
}

func TestRunOnceBoundsCorpus(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	var items []*types.Item
	for i := 0; i < 10; i++ {
		items = append(items, newsItem("bulk", fmt.Sprintf("item-%d", i), bulkTitles[i], base.Add(-time.Duration(i)*time.Hour)))
	}

	cfg := testCfg()
	cfg.MaxItems = 4
	st := &memStore{}
	o := New(cfg, []sources.Adapter{&fakeAdapter{id: "bulk", items: items}}, st)

	if err := o.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(st.corpus.Items) != 4 {
		t.Fatalf("corpus not bounded: %d items", len(st.corpus.Items))
	}
}

func TestRunOncePersistFailureMarksPrior(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	old := newsItem("archive", "old", bulkTitles[5], base)
	st := &memStore{
		corpus: &types.Corpus{
			RunStatus:  types.RunSuccess,
			TotalItems: 1,
			Items:      []*types.Item{old},
		},
		saveErr: errors.New("disk full"),
	}

	o := New(testCfg(), []sources.Adapter{&fakeAdapter{id: "fresh"}}, st)
	if err := o.RunOnce(context.Background()); err == nil {
		t.Fatal("persistence failure must fail the run")
	}
	// First save fails, then the failed-marker re-save is attempted.
	if st.saves != 2 {
		t.Errorf("expected a failed-marker re-save attempt, saves=%d", st.saves)
	}
}
