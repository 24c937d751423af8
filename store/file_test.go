package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"invoiceradar/types"
)

func TestFileStoreMissingFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "news.json"))

	corpus, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if corpus.RunStatus != types.RunUnknown {
		t.Fatalf("expected run status %q, got %q", types.RunUnknown, corpus.RunStatus)
	}
	if len(corpus.Items) != 0 {
		t.Fatalf("expected empty corpus, got %d items", len(corpus.Items))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "data", "news.json"))

	published := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	corpus := &types.Corpus{
		LastUpdated: &now,
		RunStatus:   types.RunSuccess,
		TotalItems:  1,
		Items: []*types.Item{{
			ID:          types.GenerateID("zatca", "https://zatca.gov.sa/news/1", published),
			Title:       "Wave 20 integration deadline announced",
			Summary:     "Taxpayers above the threshold must integrate with FATOORA.",
			URL:         "https://zatca.gov.sa/news/1",
			Source:      types.Source{ID: "zatca", Name: "ZATCA", Kind: types.KindOfficial},
			Region:      "middle-east",
			Country:     "SA",
			CountryName: "Saudi Arabia",
			Categories:  []string{"mandate", "deadline"},
			PublishedAt: published,
			CrawledAt:   now,
		}},
	}

	if err := fs.Save(context.Background(), corpus); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RunStatus != types.RunSuccess || got.TotalItems != 1 || len(got.Items) != 1 {
		t.Fatalf("corpus did not round-trip: %+v", got)
	}
	item := got.Items[0]
	if item.ID != corpus.Items[0].ID || item.Title != corpus.Items[0].Title {
		t.Fatalf("item did not round-trip: %+v", item)
	}
	if !item.PublishedAt.Equal(published) {
		t.Fatalf("publishedAt drifted: %v", item.PublishedAt)
	}
	if item.Country != "SA" || item.CountryName != "Saudi Arabia" {
		t.Fatalf("country fields did not round-trip: %+v", item)
	}
}

func TestFileStoreCorruptFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected decode error for corrupt corpus")
	}
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(filepath.Join(dir, "news.json"))

	if err := fs.Save(context.Background(), types.EmptyCorpus()); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "news.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected directory contents: %v", names)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "news.json"))
	ctx := context.Background()

	first := types.EmptyCorpus()
	first.RunStatus = types.RunSuccess
	if err := fs.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := types.EmptyCorpus()
	second.RunStatus = types.RunFailed
	if err := fs.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RunStatus != types.RunFailed {
		t.Fatalf("expected latest save to win, got status %q", got.RunStatus)
	}
}
