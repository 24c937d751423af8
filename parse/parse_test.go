package parse

import (
	"testing"
	"time"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  hello   world  ", "hello world"},
		{"VAT &amp; e-invoicing", "VAT & e-invoicing"},
		{"line\none\n\n\ttwo", "line one two"},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short text", 100); got != "short text" {
		t.Errorf("short text should pass through, got %q", got)
	}
	got := Truncate("the quick brown fox jumps over the lazy dog", 20)
	if got != "the quick brown..." {
		t.Errorf("unexpected truncation: %q", got)
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2026-03-15", "15 Mar 2026", "March 15, 2026", "2026-03-15T08:30:00Z"} {
		got := ParseDate(s)
		if got.Year() != 2026 || got.Month() != time.March || got.Day() != 15 {
			t.Errorf("ParseDate(%q) = %v", s, got)
		}
	}
	if !ParseDate("not a date").IsZero() {
		t.Error("garbage should parse to zero time")
	}
	if !ParseDate("").IsZero() {
		t.Error("empty string should parse to zero time")
	}
}

func TestParseRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2 hours ago", now.Add(-2 * time.Hour)},
		{"1 day ago", now.Add(-24 * time.Hour)},
		{"3 weeks ago", now.Add(-3 * 7 * 24 * time.Hour)},
		{"2 months ago", now.Add(-60 * 24 * time.Hour)},
		{"45 min ago", now.Add(-45 * time.Minute)},
		{"just now", now},
	}
	for _, tt := range tests {
		if got := ParseRelativeTime(tt.in, now); !got.Equal(tt.want) {
			t.Errorf("ParseRelativeTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAnyDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	if got := ParseAnyDate("2 days ago", now); !got.Equal(now.Add(-48 * time.Hour)) {
		t.Errorf("relative form: %v", got)
	}
	if got := ParseAnyDate("2026-01-02", now); got.Day() != 2 {
		t.Errorf("absolute form: %v", got)
	}
	if got := ParseAnyDate("???", now); !got.Equal(now) {
		t.Errorf("fallback: %v", got)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		title, summary string
		want           []string
	}{
		{"E-invoicing becomes mandatory", "New regulation takes effect", []string{"mandate", "regulation"}},
		{"Deadline extended for wave 5", "", []string{"deadline"}},
		{"Company news", "nothing notable here", []string{"update"}},
		{"Mandatory law with a deadline and new product launch", "", []string{"mandate", "regulation"}},
	}
	for _, tt := range tests {
		got := Categorize(tt.title, tt.summary)
		if len(got) != len(tt.want) {
			t.Errorf("Categorize(%q) = %v, want %v", tt.title, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Categorize(%q) = %v, want %v", tt.title, got, tt.want)
				break
			}
		}
	}
}

func TestRelevant(t *testing.T) {
	if !Relevant("ZATCA announces wave 21", "") {
		t.Error("zatca keyword should be relevant")
	}
	if !Relevant("New VAT rules in Poland", "KSeF goes live") {
		t.Error("vat keyword should be relevant")
	}
	if Relevant("Football results", "weekend roundup") {
		t.Error("unrelated text should not be relevant")
	}
}

func TestDetectCountry(t *testing.T) {
	tests := []struct {
		title                  string
		code, name, region string
	}{
		{"ZATCA publishes wave 21 criteria", "SA", "Saudi Arabia", "middle-east"},
		{"Poland delays KSeF rollout", "PL", "Poland", "europe"},
		{"Malaysia MyInvois phase 3 begins", "MY", "Malaysia", "asia-pacific"},
		{"Brazil reforms NF-e layout", "BR", "Brazil", "americas"},
		{"Kenya TIMS compliance update", "KE", "Kenya", "africa"},
		{"Global trends in digitization", "", "Global", "global"},
	}
	for _, tt := range tests {
		code, name, region := DetectCountry(tt.title, "")
		if code != tt.code || name != tt.name || region != tt.region {
			t.Errorf("DetectCountry(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.title, code, name, region, tt.code, tt.name, tt.region)
		}
	}
}

func TestDetectCountryFirstRuleWins(t *testing.T) {
	// Saudi is listed before UAE, so a mixed mention resolves to SA.
	code, _, _ := DetectCountry("Saudi and UAE align e-invoicing timelines", "")
	if code != "SA" {
		t.Errorf("expected SA, got %q", code)
	}
}
