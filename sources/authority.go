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
	authorityItemLimit = 20
	authorityLinkScan  = 30
)

// authorityKeywords is the shared relevance filter for authority portals.
// General tax and VAT news from a tax authority is in scope even when
// e-invoicing is not named.
var authorityKeywords = []string{
	"invoice", "e-invoice", "einvoice",
	"tax", "vat", "electronic", "digital", "compliance",
	"mandate", "registration", "update", "news", "announcement",
	"deadline", "b2b", "b2c",
}

// AuthorityConfig describes one government tax-authority portal for the
// generic authority adapter.
type AuthorityConfig struct {
	ID      string
	Name    string
	BaseURL string
	Pages   []string
	Country string
	// ExtraKeywords widens the relevance filter with local programme
	// names such as "fatoorah" or "jofotara".
	ExtraKeywords []string
}

// Authority crawls a government tax-authority news portal. These sites share
// no common markup, so the adapter tries a cascade of listing selectors and
// falls back to scanning bare links when nothing structured renders.
type Authority struct {
	cfg    AuthorityConfig
	client *fetch.Client
}

func NewAuthority(cfg config.Config, src AuthorityConfig) *Authority {
	return &Authority{cfg: src, client: newClient(cfg)}
}

func (a *Authority) SourceID() string             { return a.cfg.ID }
func (a *Authority) SourceName() string           { return a.cfg.Name }
func (a *Authority) SourceKind() types.SourceKind { return types.KindOfficial }

func (a *Authority) relevant(text string) bool {
	return containsAny(text, authorityKeywords) || containsAny(text, a.cfg.ExtraKeywords)
}

func (a *Authority) Crawl(ctx context.Context) ([]*types.Item, error) {
	now := time.Now().UTC()
	seenTitles := make(map[string]struct{})
	var items []*types.Item

	for _, pageURL := range a.cfg.Pages {
		body, err := a.client.Fetch(ctx, pageURL)
		if err != nil {
			log.Printf("%s: fetch %s: %v", a.cfg.ID, pageURL, err)
			continue
		}
		doc, err := parseDocument(body)
		if err != nil {
			log.Printf("%s: parse %s: %v", a.cfg.ID, pageURL, err)
			continue
		}

		var rows *goquery.Selection
		for _, sel := range []string{
			"article",
			".news-item",
			".news-card",
			".announcement",
			".media-item",
			`[class*="news"]`,
			`[class*="announcement"]`,
			".card",
			".list-item",
			".entry",
			"table tr",
			".post",
		} {
			if found := doc.Find(sel); found.Length() > 1 {
				rows = found
				break
			}
		}
		if rows == nil {
			items = append(items, a.scanLinks(doc, now, seenTitles)...)
			continue
		}

		count := 0
		rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
			if count >= authorityItemLimit {
				return false
			}
			count++

			if row.Find("th").Length() > 0 {
				return true
			}

			title := parse.CleanText(row.Find("a, h2, h3, h4, .title, td:first-child").First().Text())
			if len(title) < 10 {
				return true
			}

			url := pageURL
			if href := row.Find("a[href]").First().AttrOr("href", ""); href != "" && !skipHref(href) {
				if resolved := absoluteURL(a.cfg.BaseURL, href); types.ValidURL(resolved) {
					url = resolved
				}
			}

			summary := title
			if text := parse.CleanText(row.Find("p, .summary, .description, .excerpt").First().Text()); len(text) > 20 {
				summary = text
			}

			if !a.relevant(title + " " + summary) {
				return true
			}
			if _, dup := seenTitles[title]; dup {
				return true
			}
			seenTitles[title] = struct{}{}

			published, _ := extractDate(row, now, "time", ".date", `[class*="date"]`, "td:last-child")

			items = append(items, a.item(title, summary, url, published))
			return true
		})
	}

	return items, nil
}

// scanLinks is the fallback for portals that render no structured listing:
// keep any link whose text reads like a relevant headline.
func (a *Authority) scanLinks(doc *goquery.Document, now time.Time, seenTitles map[string]struct{}) []*types.Item {
	var items []*types.Item
	doc.Find("a[href]").EachWithBreak(func(i int, link *goquery.Selection) bool {
		if i >= authorityLinkScan {
			return false
		}

		title := parse.CleanText(link.Text())
		if len(title) < 15 || !a.relevant(title) {
			return true
		}

		href := link.AttrOr("href", "")
		if skipHref(href) {
			return true
		}
		url := absoluteURL(a.cfg.BaseURL, href)
		if !types.ValidURL(url) {
			return true
		}

		if _, dup := seenTitles[title]; dup {
			return true
		}
		seenTitles[title] = struct{}{}

		summary := "Official update from " + a.cfg.Name + ": " + title
		items = append(items, a.item(title, summary, url, now))
		return true
	})
	return items
}

func (a *Authority) item(title, summary, url string, published time.Time) *types.Item {
	return &types.Item{
		ID:          types.GenerateID(a.cfg.ID, url, published),
		Title:       title,
		Summary:     summary,
		URL:         url,
		Source:      types.Source{ID: a.cfg.ID, Name: a.cfg.Name, Kind: types.KindOfficial},
		Region:      "middle-east",
		Country:     a.cfg.Country,
		CountryName: parse.CountryName(a.cfg.Country),
		Categories:  parse.Categorize(title, summary),
		PublishedAt: published,
	}
}
