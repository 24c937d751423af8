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

const atlasBaseURL = "https://www.pagero.com"

// atlasCountries lists the country compliance pages to crawl, Middle East
// first.
var atlasCountries = []struct {
	slug   string
	code   string
	region string
}{
	{"saudi-arabia", "SA", "middle-east"},
	{"united-arab-emirates", "AE", "middle-east"},
	{"egypt", "EG", "middle-east"},
	{"bahrain", "BH", "middle-east"},
	{"oman", "OM", "middle-east"},
	{"qatar", "QA", "middle-east"},
	{"jordan", "JO", "middle-east"},
	{"kuwait", "KW", "middle-east"},
	{"germany", "DE", "europe"},
	{"france", "FR", "europe"},
	{"italy", "IT", "europe"},
	{"spain", "ES", "europe"},
	{"poland", "PL", "europe"},
	{"belgium", "BE", "europe"},
	{"portugal", "PT", "europe"},
	{"greece", "GR", "europe"},
	{"romania", "RO", "europe"},
	{"croatia", "HR", "europe"},
}

// atlasDeadlineKeywords mark a country page as carrying a dated obligation.
var atlasDeadlineKeywords = []string{
	"deadline", "effective", "mandatory", "january", "july", "2026", "2027",
}

// Atlas crawls the Pagero Regulatory Atlas country compliance pages. Each
// page yields at most one item summarizing the country's current state, so
// items are stamped with the crawl time rather than a publication date.
type Atlas struct {
	client  *fetch.Client
	baseURL string
}

func NewAtlas(cfg config.Config) *Atlas {
	return &Atlas{client: newClient(cfg), baseURL: atlasBaseURL}
}

func (a *Atlas) SourceID() string             { return "pagero-atlas" }
func (a *Atlas) SourceName() string           { return "Pagero Regulatory Atlas" }
func (a *Atlas) SourceKind() types.SourceKind { return types.KindVendor }

func (a *Atlas) Crawl(ctx context.Context) ([]*types.Item, error) {
	now := time.Now().UTC()
	var items []*types.Item

	for _, country := range atlasCountries {
		pageURL := a.baseURL + "/compliance/regulatory-updates/" + country.slug
		body, err := a.client.Fetch(ctx, pageURL)
		if err != nil {
			log.Printf("pagero-atlas: fetch %s: %v", pageURL, err)
			continue
		}
		doc, err := parseDocument(body)
		if err != nil {
			log.Printf("pagero-atlas: parse %s: %v", pageURL, err)
			continue
		}

		countryName := parse.CountryName(country.code)

		content := selectFirst(doc,
			".content-main", "main", ".page-content", "article", `[class*="content"]`,
		)

		title := parse.CleanText(content.Find("h1, .page-title, .title").First().Text())
		if title == "" {
			title = countryName + " E-Invoicing Compliance Update"
		}

		// Summary is built from the first substantial paragraphs.
		var summary string
		content.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
			if i >= 3 || len(summary) > 200 {
				return false
			}
			text := parse.CleanText(p.Text())
			if len(text) > 30 {
				if summary != "" {
					summary += " "
				}
				summary += text
			}
			return true
		})
		summary = parse.Truncate(summary, 300)
		if summary == "" {
			summary = "E-invoicing regulatory updates and compliance requirements for " + countryName
		}

		// Categories stay within the two-entry cap, so a dated obligation
		// displaces the generic regulation tag.
		categories := []string{"compliance", "regulation"}
		if containsAny(summary, atlasDeadlineKeywords) {
			categories = []string{"compliance", "deadline"}
		}

		items = append(items, &types.Item{
			ID:          types.GenerateID(a.SourceID(), pageURL, now),
			Title:       title,
			Summary:     summary,
			URL:         pageURL,
			Source:      types.Source{ID: a.SourceID(), Name: a.SourceName(), Kind: a.SourceKind()},
			Region:      country.region,
			Country:     country.code,
			CountryName: countryName,
			Categories:  categories,
			PublishedAt: now,
		})
	}

	return items, nil
}
