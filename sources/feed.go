package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"invoiceradar/config"
	"invoiceradar/fetch"
	"invoiceradar/parse"
	"invoiceradar/types"
)

const feedItemLimit = 25

// FeedConfig describes one RSS/Atom source for the generic feed adapter.
type FeedConfig struct {
	ID      string
	Name    string
	Kind    types.SourceKind
	FeedURL string
	// Region and country defaults applied when keyword detection finds
	// nothing in the entry text.
	Region      string
	Country     string
	CountryName string
}

// Feed is a generic adapter for sources that publish RSS or Atom feeds.
// Entries are filtered down to e-invoicing topics before being kept.
type Feed struct {
	cfg    FeedConfig
	client *fetch.Client
	parser *gofeed.Parser
}

func NewFeed(cfg config.Config, feedCfg FeedConfig) *Feed {
	return &Feed{
		cfg:    feedCfg,
		client: newClient(cfg),
		parser: gofeed.NewParser(),
	}
}

func (f *Feed) SourceID() string             { return f.cfg.ID }
func (f *Feed) SourceName() string           { return f.cfg.Name }
func (f *Feed) SourceKind() types.SourceKind { return f.cfg.Kind }

func (f *Feed) Crawl(ctx context.Context) ([]*types.Item, error) {
	body, err := f.client.Fetch(ctx, f.cfg.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", f.cfg.FeedURL, err)
	}

	feed, err := f.parser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", f.cfg.FeedURL, err)
	}

	now := time.Now().UTC()
	count := len(feed.Items)
	if count > feedItemLimit {
		count = feedItemLimit
	}

	items := make([]*types.Item, 0, count)
	for i := 0; i < count; i++ {
		entry := feed.Items[i]

		title := parse.CleanText(entry.Title)
		if title == "" || entry.Link == "" {
			continue
		}

		summary := parse.CleanText(entry.Description)
		if summary == "" {
			summary = parse.CleanText(entry.Content)
		}
		summary = parse.Truncate(summary, 300)
		if summary == "" {
			summary = title
		}

		if !parse.Relevant(title, summary) {
			continue
		}

		published := now
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		} else if entry.Published != "" {
			published = parse.ParseAnyDate(entry.Published, now)
		}

		country, countryName, region := parse.DetectCountry(title, summary)
		if country == "" {
			if f.cfg.Country != "" {
				country, countryName = f.cfg.Country, f.cfg.CountryName
				if countryName == "" {
					countryName = parse.CountryName(country)
				}
			}
			if f.cfg.Region != "" {
				region = f.cfg.Region
			}
		}

		items = append(items, &types.Item{
			ID:          types.GenerateID(f.cfg.ID, entry.Link, published),
			Title:       title,
			Summary:     summary,
			URL:         entry.Link,
			Source:      types.Source{ID: f.cfg.ID, Name: f.cfg.Name, Kind: f.cfg.Kind},
			Region:      region,
			Country:     country,
			CountryName: countryName,
			Categories:  parse.Categorize(title, summary),
			PublishedAt: published,
		})
	}

	return items, nil
}
