package sources

import (
	"context"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"

	"invoiceradar/config"
	"invoiceradar/fetch"
	"invoiceradar/parse"
	"invoiceradar/types"
)

const (
	uaeFTABaseURL   = "https://tax.gov.ae"
	uaeFTAItemLimit = 20
)

var uaeFTATaxKeywords = []string{
	"vat", "tax", "invoice", "e-invoice", "einvoice",
	"excise", "corporate", "return", "refund", "compliance",
	"registration", "deadline", "penalty", "fta",
}

// UAEFTA crawls announcements and news from the UAE Federal Tax Authority.
// The FTA publishes title-only announcement rows, so the title doubles as
// the summary.
type UAEFTA struct {
	client  *fetch.Client
	baseURL string
	pages   []string
}

func NewUAEFTA(cfg config.Config) *UAEFTA {
	return &UAEFTA{
		client:  newClient(cfg),
		baseURL: uaeFTABaseURL,
		pages: []string{
			uaeFTABaseURL + "/en/announcements.aspx",
			uaeFTABaseURL + "/en/news.aspx",
		},
	}
}

func (u *UAEFTA) SourceID() string             { return "uae-fta" }
func (u *UAEFTA) SourceName() string           { return "UAE FTA" }
func (u *UAEFTA) SourceKind() types.SourceKind { return types.KindOfficial }

func (u *UAEFTA) Crawl(ctx context.Context) ([]*types.Item, error) {
	now := time.Now().UTC()
	seenTitles := make(map[string]struct{})
	var items []*types.Item

	for _, pageURL := range u.pages {
		body, err := u.client.Fetch(ctx, pageURL)
		if err != nil {
			log.Printf("uae-fta: fetch %s: %v", pageURL, err)
			continue
		}
		doc, err := parseDocument(body)
		if err != nil {
			log.Printf("uae-fta: parse %s: %v", pageURL, err)
			continue
		}

		// Announcements appear as table rows on some pages and card lists
		// on others; take the first selector that yields more than one node.
		var rows *goquery.Selection
		for _, sel := range []string{
			"table tr",
			".announcement-item",
			".news-item",
			"article",
			".list-item",
			`[class*="announcement"]`,
			`[class*="news"]`,
		} {
			if found := doc.Find(sel); found.Length() > 1 {
				rows = found
				break
			}
		}
		if rows == nil {
			continue
		}

		count := 0
		rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
			if count >= uaeFTAItemLimit {
				return false
			}
			count++

			if row.Find("th").Length() > 0 {
				return true
			}

			title := parse.CleanText(row.Find("a, td:first-child, .title, h3, h4").First().Text())
			if len(title) < 10 {
				return true
			}
			if !containsAny(title, uaeFTATaxKeywords) {
				return true
			}
			if _, dup := seenTitles[title]; dup {
				return true
			}

			url := pageURL
			if href := row.Find("a[href]").First().AttrOr("href", ""); href != "" {
				if resolved := absoluteURL(u.baseURL, href); types.ValidURL(resolved) {
					url = resolved
				}
			}

			published, _ := extractDate(row, now, "time", ".date", "td:last-child", `[class*="date"]`)

			seenTitles[title] = struct{}{}
			items = append(items, &types.Item{
				ID:          types.GenerateID(u.SourceID(), url, published),
				Title:       title,
				Summary:     title,
				URL:         url,
				Source:      types.Source{ID: u.SourceID(), Name: u.SourceName(), Kind: u.SourceKind()},
				Region:      "middle-east",
				Country:     "AE",
				CountryName: "UAE",
				Categories:  parse.Categorize(title, title),
				PublishedAt: published,
			})
			return true
		})
	}

	return items, nil
}
