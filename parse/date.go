package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses an absolute date string in any common format. Returns the
// zero time when the string cannot be parsed.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

var relativeUnits = []struct {
	re  *regexp.Regexp
	dur time.Duration
}{
	{regexp.MustCompile(`(\d+)\s*hour`), time.Hour},
	{regexp.MustCompile(`(\d+)\s*day`), 24 * time.Hour},
	{regexp.MustCompile(`(\d+)\s*week`), 7 * 24 * time.Hour},
	{regexp.MustCompile(`(\d+)\s*month`), 30 * 24 * time.Hour},
	{regexp.MustCompile(`(\d+)\s*min`), time.Minute},
}

// ParseRelativeTime resolves strings like "2 hours ago" or "3 weeks ago"
// against now. Unrecognized strings resolve to now itself.
func ParseRelativeTime(s string, now time.Time) time.Time {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, unit := range relativeUnits {
		if m := unit.re.FindStringSubmatch(s); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return now.Add(-time.Duration(n) * unit.dur)
		}
	}
	return now
}

// ParseAnyDate handles both relative ("2 days ago") and absolute date
// strings, falling back to now when neither form parses.
func ParseAnyDate(s string, now time.Time) time.Time {
	if strings.Contains(strings.ToLower(s), "ago") {
		return ParseRelativeTime(s, now)
	}
	if t := ParseDate(s); !t.IsZero() {
		return t
	}
	return now
}
