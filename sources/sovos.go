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
	sovosBaseURL      = "https://sovos.com"
	sovosItemsPerPage = 25
)

// Sovos crawls the Sovos blog and regulatory-updates sections. Every fetched
// page is parsed; the sections overlap, so results are deduplicated by URL.
type Sovos struct {
	client  *fetch.Client
	baseURL string
	pages   []string
}

func NewSovos(cfg config.Config) *Sovos {
	return &Sovos{
		client:  newClient(cfg),
		baseURL: sovosBaseURL,
		pages: []string{
			sovosBaseURL + "/blog/",
			sovosBaseURL + "/regulatory-updates/",
			sovosBaseURL + "/blog/vat/",
		},
	}
}

func (s *Sovos) SourceID() string             { return "sovos" }
func (s *Sovos) SourceName() string           { return "Sovos" }
func (s *Sovos) SourceKind() types.SourceKind { return types.KindVendor }

func (s *Sovos) Crawl(ctx context.Context) ([]*types.Item, error) {
	now := time.Now().UTC()
	seenURLs := make(map[string]struct{})
	var items []*types.Item

	for _, pageURL := range s.pages {
		body, err := s.client.Fetch(ctx, pageURL)
		if err != nil {
			log.Printf("sovos: fetch %s: %v", pageURL, err)
			continue
		}
		doc, err := parseDocument(body)
		if err != nil {
			log.Printf("sovos: parse %s: %v", pageURL, err)
			continue
		}

		posts := doc.Find(`.blog-post, .post, article, .card, [class*="blog"], [class*="post"]`)

		count := 0
		posts.EachWithBreak(func(_ int, post *goquery.Selection) bool {
			if count >= sovosItemsPerPage {
				return false
			}
			count++

			title := parse.CleanText(post.Find("h2, h3, h4, .title, a").First().Text())
			if len(title) < 10 {
				return true
			}

			url := absoluteURL(s.baseURL, post.Find("a[href]").First().AttrOr("href", ""))
			if url == "" {
				return true
			}
			if _, dup := seenURLs[url]; dup {
				return true
			}

			published, _ := extractDate(post, now, ".date", "time", `[class*="date"]`)

			summary := title
			if text := parse.CleanText(post.Find(".summary, .excerpt, p").First().Text()); text != "" {
				summary = parse.Truncate(text, 300)
			}

			if !parse.Relevant(title, summary) {
				return true
			}

			country, countryName, region := parse.DetectCountry(title, summary)

			seenURLs[url] = struct{}{}
			items = append(items, &types.Item{
				ID:          types.GenerateID(s.SourceID(), url, published),
				Title:       title,
				Summary:     summary,
				URL:         url,
				Source:      types.Source{ID: s.SourceID(), Name: s.SourceName(), Kind: s.SourceKind()},
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
