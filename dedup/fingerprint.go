package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// NormalizeKey is the exact-match form of a URL used by the dedup engine:
// lower-cased and trimmed, nothing more, so the match rule is predictable.
func NormalizeKey(rawURL string) string {
	return strings.ToLower(strings.TrimSpace(rawURL))
}

// Fingerprint hashes normalized title and URL together for O(1) duplicate
// detection across items whose URLs differ only in case or whitespace.
func Fingerprint(title, rawURL string) string {
	combined := normalizeText(title) + "|" + NormalizeKey(rawURL)
	sum := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(sum[:])
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeURL applies the deeper normalization used by the announce path:
// lower-cased scheme and host, fragment removed, common tracking query
// parameters (utm_*, fbclid, gclid) stripped, trailing slash trimmed.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return strings.TrimRight(u.String(), "/")
}
