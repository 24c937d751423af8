package sources

import (
	"invoiceradar/config"
	"invoiceradar/types"
)

// All constructs every registered adapter. Each gets its own fetch client so
// rate windows stay independent. Aggregators come first, then official
// authorities, advisory, vendors, and social.
func All(cfg config.Config) []Adapter {
	return []Adapter{
		NewVATUpdate(cfg),

		NewZATCA(cfg),
		NewUAEFTA(cfg),
		NewAuthority(cfg, AuthorityConfig{
			ID:      "egypt-eta",
			Name:    "Egypt ETA",
			BaseURL: "https://invoicing.eta.gov.eg",
			Pages: []string{
				"https://invoicing.eta.gov.eg",
				"https://invoicing.eta.gov.eg/news",
				"https://invoicing.eta.gov.eg/updates",
				"https://invoicing.eta.gov.eg/announcements",
				"https://www.eta.gov.eg/en/news",
			},
			Country: "EG",
		}),
		NewAuthority(cfg, AuthorityConfig{
			ID:      "oman-ota",
			Name:    "Oman Tax Authority",
			BaseURL: "https://www.taxoman.gov.om",
			Pages: []string{
				"https://www.taxoman.gov.om/en/news",
				"https://www.taxoman.gov.om/en/announcements",
				"https://www.taxoman.gov.om/en/media-center",
				"https://tms.taxoman.gov.om/portal/web/taxportal/news",
			},
			Country:       "OM",
			ExtraKeywords: []string{"fatoorah"},
		}),
		NewAuthority(cfg, AuthorityConfig{
			ID:      "jordan-istd",
			Name:    "Jordan ISTD",
			BaseURL: "https://www.istd.gov.jo",
			Pages: []string{
				"https://www.istd.gov.jo/en/NewsPage",
				"https://www.istd.gov.jo/en/news",
				"https://www.istd.gov.jo/English/Pages/News.aspx",
				"https://jofotara.gov.jo/en/news",
			},
			Country:       "JO",
			ExtraKeywords: []string{"jofotara", "sales tax", "income tax"},
		}),
		NewAuthority(cfg, AuthorityConfig{
			ID:      "bahrain-nbr",
			Name:    "Bahrain NBR",
			BaseURL: "https://www.nbr.gov.bh",
			Pages: []string{
				"https://www.nbr.gov.bh/en/news",
				"https://www.nbr.gov.bh/en/announcements",
				"https://www.nbr.gov.bh/en/media",
				"https://www.nbr.gov.bh/en/press-releases",
			},
			Country:       "BH",
			ExtraKeywords: []string{"excise", "revenue"},
		}),
		NewAuthority(cfg, AuthorityConfig{
			ID:      "qatar-gta",
			Name:    "Qatar GTA",
			BaseURL: "https://www.gta.gov.qa",
			Pages: []string{
				"https://www.gta.gov.qa/en/news",
				"https://www.gta.gov.qa/en/announcements",
				"https://www.gta.gov.qa/en/media-center",
			},
			Country: "QA",
		}),

		NewEY(cfg),

		NewAtlas(cfg),
		NewSovos(cfg),
		NewAvalara(cfg),
		NewFeed(cfg, FeedConfig{
			ID:      "comarch",
			Name:    "Comarch",
			Kind:    types.KindVendor,
			FeedURL: "https://www.comarch.com/rss/",
			Region:  "europe",
		}),
		NewFeed(cfg, FeedConfig{
			ID:      "pagero",
			Name:    "Pagero",
			Kind:    types.KindVendor,
			FeedURL: "https://www.pagero.com/blog/feed/",
			Region:  "europe",
		}),

		NewLinkedIn(cfg),
	}
}
