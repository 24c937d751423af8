// Package orchestrator runs the full aggregation cycle: crawl every adapter
// concurrently, merge the results into the bounded corpus, and persist it.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"invoiceradar/config"
	"invoiceradar/merge"
	"invoiceradar/sources"
	"invoiceradar/store"
	"invoiceradar/types"
)

// Outcome summarizes one adapter's crawl within a run.
type Outcome struct {
	SourceID string
	Items    int
	Dropped  int
	Duration time.Duration
	Err      error
}

// Orchestrator wires adapters, persistence, and the optional side channels.
// Mirror and Announcer may be nil; their failures never fail a run.
type Orchestrator struct {
	cfg      config.Config
	adapters []sources.Adapter
	store    store.Store

	// Mirror receives a copy of every saved corpus, typically S3.
	Mirror store.Store
	// Announcer publishes items that newly entered the corpus.
	Announcer *Announcer
}

func New(cfg config.Config, adapters []sources.Adapter, st store.Store) *Orchestrator {
	return &Orchestrator{cfg: cfg, adapters: adapters, store: st}
}

// CrawlAll fans the adapters out over a fixed worker pool and collects their
// items in completion order. A panicking or failing adapter is isolated to a
// zero-item outcome; the rest of the run proceeds.
func (o *Orchestrator) CrawlAll(ctx context.Context) ([]*types.Item, []Outcome) {
	workers := o.cfg.Workers
	if workers <= 0 {
		workers = config.DefaultWorkers
	}
	if workers > len(o.adapters) {
		workers = len(o.adapters)
	}

	jobs := make(chan sources.Adapter)
	results := make(chan crawlResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for adapter := range jobs {
				results <- o.crawlOne(ctx, adapter)
			}
		}()
	}

	go func() {
		for _, adapter := range o.adapters {
			jobs <- adapter
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var items []*types.Item
	outcomes := make([]Outcome, 0, len(o.adapters))
	for res := range results {
		items = append(items, res.items...)
		outcomes = append(outcomes, res.outcome)
	}
	return items, outcomes
}

type crawlResult struct {
	items   []*types.Item
	outcome Outcome
}

func (o *Orchestrator) crawlOne(ctx context.Context, adapter sources.Adapter) (res crawlResult) {
	start := time.Now()
	res.outcome.SourceID = adapter.SourceID()

	defer func() {
		if r := recover(); r != nil {
			res.items = nil
			res.outcome = Outcome{
				SourceID: adapter.SourceID(),
				Duration: time.Since(start),
				Err:      fmt.Errorf("adapter panic: %v", r),
			}
		}
	}()

	crawled, err := adapter.Crawl(ctx)
	res.outcome.Duration = time.Since(start)
	if err != nil {
		res.outcome.Err = err
		return res
	}

	now := time.Now().UTC()
	for _, item := range crawled {
		if !types.ValidURL(item.URL) {
			log.Printf("%s: skipping item with invalid URL: %q", adapter.SourceID(), item.URL)
			res.outcome.Dropped++
			continue
		}
		item.CrawledAt = now
		item.Categories = types.NormalizeCategories(item.Categories)
		res.items = append(res.items, item)
	}
	res.outcome.Items = len(res.items)
	return res
}

// RunOnce executes a complete aggregation cycle. The run status stays
// "success" even when every adapter fails; only a persistence failure marks
// the run failed, and the previous corpus body is then re-saved with that
// marker so readers can tell the data is stale.
func (o *Orchestrator) RunOnce(ctx context.Context) error {
	prior, err := o.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	crawled, outcomes := o.CrawlAll(ctx)
	for _, out := range outcomes {
		if out.Err != nil {
			log.Printf("%s: crawl failed in %s: %v", out.SourceID, out.Duration.Round(time.Millisecond), out.Err)
			continue
		}
		log.Printf("%s: %d items (%d dropped) in %s", out.SourceID, out.Items, out.Dropped, out.Duration.Round(time.Millisecond))
	}

	merged := merge.WithThreshold(crawled, prior.Items, o.cfg.MaxItems, o.cfg.SimilarityThreshold)

	now := time.Now().UTC()
	corpus := &types.Corpus{
		LastUpdated: &now,
		RunStatus:   types.RunSuccess,
		TotalItems:  len(merged),
		Items:       merged,
	}

	if err := o.store.Save(ctx, corpus); err != nil {
		o.markFailed(ctx, prior)
		return fmt.Errorf("save corpus: %w", err)
	}
	log.Printf("corpus saved: %d items total, %d crawled this run", len(merged), len(crawled))

	if o.Mirror != nil {
		if err := o.Mirror.Save(ctx, corpus); err != nil {
			log.Printf("mirror save failed: %v", err)
		}
	}

	if o.Announcer != nil {
		o.announceNew(prior, merged)
	}
	return nil
}

// markFailed re-saves the previous corpus body with a failed run marker.
// Best effort: if this save also fails there is nothing left to do.
func (o *Orchestrator) markFailed(ctx context.Context, prior *types.Corpus) {
	now := time.Now().UTC()
	failed := &types.Corpus{
		LastUpdated: &now,
		RunStatus:   types.RunFailed,
		TotalItems:  len(prior.Items),
		Items:       prior.Items,
	}
	if err := o.store.Save(ctx, failed); err != nil {
		log.Printf("failed-marker save also failed: %v", err)
	}
}

func (o *Orchestrator) announceNew(prior *types.Corpus, merged []*types.Item) {
	known := make(map[string]struct{}, len(prior.Items))
	for _, item := range prior.Items {
		known[item.ID] = struct{}{}
	}

	var fresh []*types.Item
	for _, item := range merged {
		if _, ok := known[item.ID]; !ok {
			fresh = append(fresh, item)
		}
	}
	if len(fresh) == 0 {
		return
	}

	sent := o.Announcer.Announce(fresh)
	log.Printf("announced %d of %d new items", sent, len(fresh))
}
