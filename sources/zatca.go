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
	zatcaBaseURL   = "https://zatca.gov.sa"
	zatcaNewsPath  = "/en/MediaCenter/News/Pages/default.aspx"
	zatcaItemLimit = 20
)

// zatcaTaxKeywords broadens the relevance filter for ZATCA: the authority's
// general tax news is in scope even when e-invoicing is not named.
var zatcaTaxKeywords = []string{"tax", "vat", "zakat", "customs", "invoice", "e-invoice", "fatoorah"}

// ZATCA crawls the Saudi Zakat, Tax and Customs Authority news listing.
type ZATCA struct {
	client  *fetch.Client
	baseURL string
}

func NewZATCA(cfg config.Config) *ZATCA {
	return &ZATCA{client: newClient(cfg), baseURL: zatcaBaseURL}
}

func (z *ZATCA) SourceID() string             { return "zatca" }
func (z *ZATCA) SourceName() string           { return "ZATCA" }
func (z *ZATCA) SourceKind() types.SourceKind { return types.KindOfficial }

func (z *ZATCA) Crawl(ctx context.Context) ([]*types.Item, error) {
	body, err := z.client.Fetch(ctx, z.baseURL+zatcaNewsPath)
	if err != nil {
		return nil, fmt.Errorf("fetch zatca news: %w", err)
	}

	doc, err := parseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("parse zatca news: %w", err)
	}

	// The site is SharePoint-rendered; listing markup varies across releases.
	posts := selectFirst(doc,
		`.news-item, .ms-rtestate-field, .news-list-item, [class*="news"]`,
		`article, .item, .post, li[class*="news"]`,
	)

	now := time.Now().UTC()
	var items []*types.Item
	posts.EachWithBreak(func(_ int, post *goquery.Selection) bool {
		if len(items) >= zatcaItemLimit {
			return false
		}

		title := parse.CleanText(post.Find(`h2, h3, h4, .title, a[class*="title"]`).First().Text())
		if len(title) < 10 {
			return true
		}

		link := post.Find("a[href]").First()
		if link.Length() == 0 {
			return true
		}
		url := absoluteURL(z.baseURL, link.AttrOr("href", ""))
		if url == "" {
			return true
		}

		published, _ := extractDate(post, now, "time", ".date", `[class*="date"]`, `span[class*="time"]`)

		summary := parse.Truncate(parse.CleanText(post.Find(".summary, .description, .excerpt, p").First().Text()), 300)
		if summary == "" {
			summary = z.detailSummary(ctx, url)
		}
		if summary == "" {
			summary = title
		}

		if !parse.Relevant(title, summary) && !containsAny(title+" "+summary, zatcaTaxKeywords) {
			return true
		}

		items = append(items, &types.Item{
			ID:          types.GenerateID(z.SourceID(), url, published),
			Title:       title,
			Summary:     summary,
			URL:         url,
			Source:      types.Source{ID: z.SourceID(), Name: z.SourceName(), Kind: z.SourceKind()},
			Region:      "middle-east",
			Country:     "SA",
			CountryName: "Saudi Arabia",
			Categories:  parse.Categorize(title, summary),
			PublishedAt: published,
		})
		return true
	})

	return items, nil
}

// detailSummary fetches the article page and extracts readable text. Listing
// entries sometimes carry no excerpt at all; the detail fetch shares the
// adapter's rate window.
func (z *ZATCA) detailSummary(ctx context.Context, url string) string {
	body, err := z.client.Fetch(ctx, url)
	if err != nil {
		log.Printf("zatca: fetch detail %s: %v", url, err)
		return ""
	}
	summary, err := parse.Summarize(body, url)
	if err != nil {
		log.Printf("zatca: summarize %s: %v", url, err)
		return ""
	}
	return summary
}
