package parse

import "strings"

// categoryRules is ordered; an item keeps at most the first two matching
// categories so earlier entries take priority.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{"mandate", []string{"mandate", "mandatory", "required", "obligation", "compulsory"}},
	{"regulation", []string{"regulation", "regulatory", "law", "legislation", "directive", "framework"}},
	{"deadline", []string{"deadline", "due date", "effective date", "implementation date", "timeline"}},
	{"partnership", []string{"partner", "partnership", "collaboration", "alliance", "joint"}},
	{"product", []string{"launch", "release", "new feature", "solution", "platform", "tool", "product"}},
	{"compliance", []string{"compliance", "compliant", "certified", "certification", "audit"}},
	{"expansion", []string{"expand", "expansion", "new office", "new market", "growth"}},
	{"update", []string{"update", "change", "modification", "amendment", "revision"}},
}

// Categorize assigns up to two categories based on keywords in the title and
// summary, defaulting to "update" when nothing matches.
func Categorize(title, summary string) []string {
	text := strings.ToLower(title + " " + summary)

	var categories []string
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				categories = append(categories, rule.category)
				break
			}
		}
		if len(categories) == 2 {
			break
		}
	}
	if len(categories) == 0 {
		categories = []string{"update"}
	}
	return categories
}

var relevanceKeywords = []string{
	"e-invoice", "einvoice", "e-invoicing", "einvoicing",
	"electronic invoice", "electronic invoicing",
	"e-receipt", "digital invoice", "tax invoice",
	"zatca", "fatoorah", "fta", "vat", "gst",
	"peppol", "ubl", "xrechnung", "factur-x",
	"sdi", "chorus pro", "ksef", "cfdi", "nf-e",
	"b2b invoice", "b2g invoice", "clearance",
	"tax compliance", "tax digitalization",
}

// Relevant reports whether the title and summary mention e-invoicing or a
// closely related tax-digitization topic.
func Relevant(title, summary string) bool {
	text := strings.ToLower(title + " " + summary)
	for _, kw := range relevanceKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
