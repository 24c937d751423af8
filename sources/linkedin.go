package sources

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"invoiceradar/config"
	"invoiceradar/parse"
	"invoiceradar/types"
)

const (
	linkedInBaseURL   = "https://www.linkedin.com"
	linkedInLoginURL  = linkedInBaseURL + "/login"
	linkedInSubmitURL = linkedInBaseURL + "/checkpoint/lg/login-submit"
	linkedInPostLimit = 15
)

// linkedInPages lists the company post feeds to scrape.
var linkedInPages = []struct {
	slug string
	name string
}{
	{"e-invoice-app", "e-invoice-app"},
}

var linkedInRelTime = regexp.MustCompile(`(\d+)\s*(mo|[hdwm])`)

// LinkedIn scrapes company post feeds through an authenticated web session.
// Without LINKEDIN_EMAIL and LINKEDIN_PASSWORD the adapter is disabled and
// crawls return no items and no error. Scraping is best effort; LinkedIn
// changes its markup often and may interpose a security checkpoint.
type LinkedIn struct {
	email    string
	password string
	http     *http.Client
	loggedIn bool
}

func NewLinkedIn(cfg config.Config) *LinkedIn {
	// Sessions need cookies, and the login flow posts forms, so this adapter
	// keeps its own http.Client instead of the shared fetch client.
	jar, _ := cookiejar.New(nil)
	return &LinkedIn{
		email:    cfg.LinkedInEmail,
		password: cfg.LinkedInPassword,
		http:     &http.Client{Jar: jar, Timeout: cfg.FetchTimeout},
	}
}

func (l *LinkedIn) SourceID() string             { return "linkedin" }
func (l *LinkedIn) SourceName() string           { return "LinkedIn" }
func (l *LinkedIn) SourceKind() types.SourceKind { return types.KindSocial }

func (l *LinkedIn) Crawl(ctx context.Context) ([]*types.Item, error) {
	if l.email == "" || l.password == "" {
		log.Printf("linkedin: no credentials configured, skipping")
		return nil, nil
	}

	if !l.loggedIn {
		if err := l.login(ctx); err != nil {
			return nil, fmt.Errorf("linkedin login: %w", err)
		}
		l.loggedIn = true
	}

	now := time.Now().UTC()
	var items []*types.Item
	for _, company := range linkedInPages {
		posts, err := l.crawlCompany(ctx, company.slug, company.name, now)
		if err != nil {
			log.Printf("linkedin: crawl %s: %v", company.slug, err)
			continue
		}
		items = append(items, posts...)
	}
	return items, nil
}

// login performs the form-based login flow: load the login page for the CSRF
// token, then post credentials to the checkpoint endpoint. The session cookie
// lands in the jar.
func (l *LinkedIn) login(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, linkedInLoginURL, nil)
	if err != nil {
		return err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return fmt.Errorf("load login page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("parse login page: %w", err)
	}

	form := url.Values{}
	form.Set("session_key", l.email)
	form.Set("session_password", l.password)
	doc.Find(`form input[type="hidden"]`).Each(func(_ int, in *goquery.Selection) {
		if name := in.AttrOr("name", ""); name != "" {
			form.Set(name, in.AttrOr("value", ""))
		}
	})

	req, err = http.NewRequestWithContext(ctx, http.MethodPost, linkedInSubmitURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err = l.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	resp.Body.Close()

	final := resp.Request.URL.String()
	if strings.Contains(final, "checkpoint") || strings.Contains(final, "challenge") {
		return fmt.Errorf("security checkpoint at %s", final)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("login rejected with status %d", resp.StatusCode)
	}
	return nil
}

func (l *LinkedIn) crawlCompany(ctx context.Context, slug, name string, now time.Time) ([]*types.Item, error) {
	pageURL := fmt.Sprintf("%s/company/%s/posts/", linkedInBaseURL, slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d for %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	posts := selectFirst(doc, `[data-urn*="activity"]`, ".feed-shared-update-v2", ".occludable-update")

	var items []*types.Item
	posts.EachWithBreak(func(_ int, post *goquery.Selection) bool {
		if len(items) >= linkedInPostLimit {
			return false
		}

		text := ""
		for _, sel := range []string{".feed-shared-text", ".update-components-text", ".break-words", `span[dir="ltr"]`} {
			if t := parse.CleanText(post.Find(sel).First().Text()); len(t) > 20 {
				text = t
				break
			}
		}
		if text == "" {
			return true
		}

		title := parse.Truncate(text, 100)
		summary := parse.Truncate(text, 300)
		if !parse.Relevant(title, summary) {
			return true
		}

		published := now
		for _, sel := range []string{".update-components-actor__sub-description", "time", "span.visually-hidden"} {
			raw := strings.ToLower(parse.CleanText(post.Find(sel).First().Text()))
			if m := linkedInRelTime.FindStringSubmatch(raw); m != nil {
				published = relTimeFrom(m, now)
				break
			}
		}

		postURL := pageURL
		if href := post.Find(`a[href*="activity"]`).First().AttrOr("href", ""); href != "" {
			postURL = absoluteURL(linkedInBaseURL, href)
		}

		items = append(items, &types.Item{
			ID:          types.GenerateID(l.SourceID(), postURL, published),
			Title:       title,
			Summary:     summary,
			URL:         postURL,
			Source:      types.Source{ID: l.SourceID(), Name: fmt.Sprintf("LinkedIn (%s)", name), Kind: l.SourceKind()},
			Region:      "global",
			CountryName: "Global",
			Categories:  parse.Categorize(title, summary),
			PublishedAt: published,
		})
		return true
	})

	return items, nil
}

// relTimeFrom resolves LinkedIn's compact relative stamps ("2h", "3d", "1w",
// "2mo") against now.
func relTimeFrom(m []string, now time.Time) time.Time {
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return now
	}
	switch m[2] {
	case "h":
		return now.Add(-time.Duration(n) * time.Hour)
	case "d":
		return now.Add(-time.Duration(n) * 24 * time.Hour)
	case "w":
		return now.Add(-time.Duration(n) * 7 * 24 * time.Hour)
	case "m", "mo":
		return now.Add(-time.Duration(n) * 30 * 24 * time.Hour)
	}
	return now
}
