package sources

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"

	"invoiceradar/config"
	"invoiceradar/fetch"
	"invoiceradar/parse"
	"invoiceradar/types"
)

const (
	eyBaseURL   = "https://www.ey.com"
	eyItemLimit = 30
)

// EY crawls the EY tax alert listing. Alerts cover many jurisdictions, so
// country and region come from keyword detection rather than fixed fields.
type EY struct {
	client  *fetch.Client
	baseURL string
	pages   []string
}

func NewEY(cfg config.Config) *EY {
	return &EY{
		client:  newClient(cfg),
		baseURL: eyBaseURL,
		pages: []string{
			eyBaseURL + "/en_gl/tax/tax-alerts",
			eyBaseURL + "/en_us/insights/tax",
		},
	}
}

func (e *EY) SourceID() string             { return "ey" }
func (e *EY) SourceName() string           { return "EY" }
func (e *EY) SourceKind() types.SourceKind { return types.KindAdvisory }

func (e *EY) Crawl(ctx context.Context) ([]*types.Item, error) {
	// The alert listing moves between site sections; take the first page
	// that fetches.
	var doc *goquery.Document
	for _, pageURL := range e.pages {
		body, err := e.client.Fetch(ctx, pageURL)
		if err != nil {
			log.Printf("ey: fetch %s: %v", pageURL, err)
			continue
		}
		doc, err = parseDocument(body)
		if err != nil {
			return nil, fmt.Errorf("parse ey alerts: %w", err)
		}
		break
	}
	if doc == nil {
		return nil, nil
	}

	cards := selectFirst(doc,
		`.ey-card, .article-card, .insight-card`,
		`[class*="card"], article, .item`,
	)

	now := time.Now().UTC()
	var items []*types.Item
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(items) >= eyItemLimit {
			return false
		}

		title := parse.CleanText(card.Find(`h2, h3, h4, .title, [class*="title"]`).First().Text())
		if title == "" {
			title = parse.CleanText(card.Find("a[href]").First().Text())
		}
		if len(title) < 15 {
			return true
		}

		href := card.Find("a[href]").First().AttrOr("href", "")
		if href == "" {
			return true
		}
		url := absoluteURL(e.baseURL, href)

		published, _ := extractDate(card, now, ".date", "time", `[class*="date"]`, `[class*="time"]`)

		summary := parse.Truncate(parse.CleanText(card.Find(`.summary, .description, .excerpt, p, [class*="desc"]`).First().Text()), 300)
		if summary == "" {
			summary = title
		}

		if !parse.Relevant(title, summary) {
			return true
		}

		country, countryName, region := parse.DetectCountry(title, summary)

		items = append(items, &types.Item{
			ID:          types.GenerateID(e.SourceID(), url, published),
			Title:       title,
			Summary:     summary,
			URL:         url,
			Source:      types.Source{ID: e.SourceID(), Name: e.SourceName(), Kind: e.SourceKind()},
			Region:      region,
			Country:     country,
			CountryName: countryName,
			Categories:  parse.Categorize(title, summary),
			PublishedAt: published,
		})
		return true
	})

	return items, nil
}
