package sources

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"invoiceradar/config"
	"invoiceradar/fetch"
	"invoiceradar/parse"
	"invoiceradar/types"
)

const (
	vatUpdateBaseURL      = "https://www.vatupdate.com"
	vatUpdateItemsPerPage = 30
)

// vatUpdateKeywords narrows the aggregator's broad VAT coverage to digital
// reporting and e-invoicing topics.
var vatUpdateKeywords = []string{
	"e-invoice", "einvoice", "e-invoicing", "electronic invoice",
	"digital reporting", "e-reporting", "ctc", "real-time reporting",
	"vat reporting", "tax digitalization", "vida",
}

// VATUpdate crawls vatupdate.com, a daily VAT and e-invoicing news
// aggregator. Both the homepage and the e-invoicing category are fetched and
// parsed independently.
type VATUpdate struct {
	client  *fetch.Client
	baseURL string
	pages   []string
}

func NewVATUpdate(cfg config.Config) *VATUpdate {
	return &VATUpdate{
		client:  newClient(cfg),
		baseURL: vatUpdateBaseURL,
		pages: []string{
			vatUpdateBaseURL,
			vatUpdateBaseURL + "/category/e-invoicing-e-reporting/",
		},
	}
}

func (v *VATUpdate) SourceID() string             { return "vatupdate" }
func (v *VATUpdate) SourceName() string           { return "VATupdate" }
func (v *VATUpdate) SourceKind() types.SourceKind { return types.KindAggregator }

func (v *VATUpdate) Crawl(ctx context.Context) ([]*types.Item, error) {
	now := time.Now().UTC()
	seenURLs := make(map[string]struct{})
	var items []*types.Item

	for _, pageURL := range v.pages {
		body, err := v.client.Fetch(ctx, pageURL)
		if err != nil {
			log.Printf("vatupdate: fetch %s: %v", pageURL, err)
			continue
		}
		doc, err := parseDocument(body)
		if err != nil {
			log.Printf("vatupdate: parse %s: %v", pageURL, err)
			continue
		}

		// WordPress article cards.
		posts := selectFirst(doc, "article", ".post", ".entry", ".blog-post", `[class*="post-"]`)

		count := 0
		posts.EachWithBreak(func(_ int, post *goquery.Selection) bool {
			if count >= vatUpdateItemsPerPage {
				return false
			}
			count++

			titleElem := post.Find("h2 a, h3 a, .entry-title a, .post-title a").First()
			if titleElem.Length() == 0 {
				titleElem = post.Find("h2, h3, .title").First()
			}
			title := parse.CleanText(titleElem.Text())
			if len(title) < 15 {
				return true
			}

			href := titleElem.AttrOr("href", "")
			if href == "" {
				href = post.Find("a[href]").First().AttrOr("href", "")
			}
			url := absoluteURL(v.baseURL, href)
			if url == "" || !strings.Contains(url, "vatupdate.com") {
				return true
			}
			if _, dup := seenURLs[url]; dup {
				return true
			}

			published, _ := extractDate(post, now, "time", ".date", ".post-date", ".entry-date", `[class*="time"]`)

			summary := title
			if text := parse.CleanText(post.Find(".excerpt, .entry-summary, .post-excerpt, p").First().Text()); len(text) > 30 {
				summary = parse.Truncate(text, 300)
			}

			if !containsAny(title+" "+summary, vatUpdateKeywords) {
				return true
			}

			country, countryName, region := parse.DetectCountry(title, summary)

			seenURLs[url] = struct{}{}
			items = append(items, &types.Item{
				ID:          types.GenerateID(v.SourceID(), url, published),
				Title:       title,
				Summary:     summary,
				URL:         url,
				Source:      types.Source{ID: v.SourceID(), Name: v.SourceName(), Kind: v.SourceKind()},
				Region:      region,
				Country:     country,
				CountryName: countryName,
				Categories:  parse.Categorize(title, summary),
				PublishedAt: published,
			})
			return true
		})
	}

	return items, nil
}
