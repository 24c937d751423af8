package parse

import (
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

const summaryMaxLen = 300

// Summarize extracts readable text from an HTML page and truncates it to
// summary length. pageURL helps readability resolve relative links.
func Summarize(htmlBody, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(htmlBody), u)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}

	text := CleanText(article.TextContent)
	if text == "" {
		text = CleanText(article.Excerpt)
	}
	return Truncate(text, summaryMaxLen), nil
}
