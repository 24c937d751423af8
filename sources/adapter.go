// Package sources implements the site adapters that collect raw news items.
// Each adapter owns its own fetch client so rate limits never bleed between
// sources.
package sources

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"invoiceradar/config"
	"invoiceradar/fetch"
	"invoiceradar/parse"
	"invoiceradar/types"
)

// Adapter collects items from a single external source.
type Adapter interface {
	SourceID() string
	SourceName() string
	SourceKind() types.SourceKind
	// Crawl fetches and parses the source. Implementations return what they
	// could collect; partial results with a nil error are normal.
	Crawl(ctx context.Context) ([]*types.Item, error)
}

func newClient(cfg config.Config) *fetch.Client {
	return fetch.New(fetch.Options{
		Calls:   cfg.RateCalls,
		Window:  cfg.RateWindow,
		Timeout: cfg.FetchTimeout,
	})
}

func parseDocument(body string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

// absoluteURL resolves hrefs that are relative to the source's base URL.
func absoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return base + href
}

// selectFirst returns the nodes matched by the first selector that finds
// anything, mirroring sites that render the same listing under different
// markup depending on the page variant.
func selectFirst(doc *goquery.Document, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if s := doc.Find(sel); s.Length() > 0 {
			return s
		}
	}
	return doc.Find(selectors[len(selectors)-1])
}

// extractDate pulls a publication time out of the first matching element,
// preferring a datetime attribute over the element text. Relative forms like
// "2 hours ago" are resolved against now.
func extractDate(item *goquery.Selection, now time.Time, selectors ...string) (time.Time, bool) {
	for _, sel := range selectors {
		elem := item.Find(sel).First()
		if elem.Length() == 0 {
			continue
		}
		raw := elem.AttrOr("datetime", "")
		if raw == "" {
			raw = elem.Text()
		}
		raw = parse.CleanText(raw)
		if raw == "" {
			continue
		}
		return parse.ParseAnyDate(raw, now), true
	}
	return now, false
}

// skipHref reports hrefs that can never resolve to an article URL.
func skipHref(href string) bool {
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:")
}

func containsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
