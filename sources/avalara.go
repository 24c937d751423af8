package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"invoiceradar/config"
	"invoiceradar/fetch"
	"invoiceradar/parse"
	"invoiceradar/types"
)

const (
	avalaraBaseURL   = "https://www.avalara.com"
	avalaraBlogPath  = "/blog/en/north-america"
	avalaraItemLimit = 25
)

// Avalara crawls the Avalara compliance blog.
type Avalara struct {
	client  *fetch.Client
	baseURL string
}

func NewAvalara(cfg config.Config) *Avalara {
	return &Avalara{client: newClient(cfg), baseURL: avalaraBaseURL}
}

func (a *Avalara) SourceID() string             { return "avalara" }
func (a *Avalara) SourceName() string           { return "Avalara" }
func (a *Avalara) SourceKind() types.SourceKind { return types.KindVendor }

func (a *Avalara) Crawl(ctx context.Context) ([]*types.Item, error) {
	body, err := a.client.Fetch(ctx, a.baseURL+avalaraBlogPath)
	if err != nil {
		return nil, fmt.Errorf("fetch avalara blog: %w", err)
	}
	doc, err := parseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("parse avalara blog: %w", err)
	}

	posts := doc.Find(`.blog-post, .post, article, .card, [class*="blog"]`)

	now := time.Now().UTC()
	var items []*types.Item
	posts.EachWithBreak(func(i int, post *goquery.Selection) bool {
		if i >= avalaraItemLimit {
			return false
		}

		title := parse.CleanText(post.Find(`h2, h3, h4, .title, a[class*="title"]`).First().Text())
		if len(title) < 10 {
			return true
		}

		href := post.Find("a[href]").First().AttrOr("href", "")
		if href == "" {
			return true
		}
		url := absoluteURL(a.baseURL, href)

		published, _ := extractDate(post, now, ".date", "time", `[class*="date"]`)

		summary := parse.Truncate(parse.CleanText(post.Find(`.summary, .excerpt, p, [class*="desc"]`).First().Text()), 300)
		if summary == "" {
			summary = title
		}

		if !parse.Relevant(title, summary) {
			return true
		}

		country, countryName, region := parse.DetectCountry(title, summary)

		items = append(items, &types.Item{
			ID:          types.GenerateID(a.SourceID(), url, published),
			Title:       title,
			Summary:     summary,
			URL:         url,
			Source:      types.Source{ID: a.SourceID(), Name: a.SourceName(), Kind: a.SourceKind()},
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
