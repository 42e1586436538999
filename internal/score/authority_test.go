package score

import (
	"testing"

	"github.com/newsanalyst/newsanalyst/internal/config"
	"github.com/newsanalyst/newsanalyst/internal/model"
)

func TestAuthorityClassifier_PrimaryDomains(t *testing.T) {
	cfg := &config.AuthorityConfig{
		PrimaryDomains: []string{
			"ons.gov.uk",
			"doi.org",
			"who.int",
		},
		SecondaryDomains: []string{
			"reuters.com",
		},
	}

	classifier := NewAuthorityClassifier(cfg)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://ons.gov.uk/employmentandlabourmarket",
			expected: model.TierPrimary,
			desc:     "Primary domain exact match",
		},
		{
			url:      "https://www.ons.gov.uk/economy",
			expected: model.TierPrimary,
			desc:     "Primary domain with www prefix",
		},
		{
			url:      "https://doi.org/10.1234/example",
			expected: model.TierPrimary,
			desc:     "DOI primary source",
		},
		{
			url:      "https://apps.WHO.int/gho/data",
			expected: model.TierPrimary,
			desc:     "Primary domain subdomain, mixed case",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_SecondaryDomains(t *testing.T) {
	cfg := &config.AuthorityConfig{
		SecondaryDomains: []string{
			"apnews.com",
			"politifact.com",
		},
	}

	classifier := NewAuthorityClassifier(cfg)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://apnews.com/article/economy",
			expected: model.TierSecondary,
			desc:     "Wire service secondary source",
		},
		{
			url:      "https://www.politifact.com/factchecks/2024/",
			expected: model.TierSecondary,
			desc:     "Fact-checker secondary source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_PathPatterns(t *testing.T) {
	cfg := &config.AuthorityConfig{
		PathPatterns: []config.PathPattern{
			{Pattern: "^/press-releases?/", Tier: "primary"},
			{Pattern: "/statistics/", Tier: "primary"},
			{Pattern: "/opinion/", Tier: "tertiary"},
			{Pattern: "([", Tier: "primary"}, // invalid, skipped
		},
	}

	classifier := NewAuthorityClassifier(cfg)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://example.com/press-release/2024-budget",
			expected: model.TierPrimary,
			desc:     "Path pattern press release",
		},
		{
			url:      "https://example.org/data/statistics/unemployment",
			expected: model.TierPrimary,
			desc:     "Path pattern statistics",
		},
		{
			url:      "https://example.net/opinion/column",
			expected: model.TierTertiary,
			desc:     "Path pattern tertiary",
		},
		{
			url:      "https://example.com/blog/post",
			expected: model.TierTertiary,
			desc:     "No matching path pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}

	if len(classifier.pathPatterns) != 3 {
		t.Errorf("Expected invalid pattern to be skipped, got %d patterns", len(classifier.pathPatterns))
	}
}

func TestAuthorityClassifier_TLDHeuristics(t *testing.T) {
	classifier := NewAuthorityClassifier(nil) // Use defaults

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://whitehouse.gov/briefing-room",
			expected: model.TierPrimary,
			desc:     ".gov TLD should be primary",
		},
		{
			url:      "https://mit.edu/research",
			expected: model.TierPrimary,
			desc:     ".edu TLD should be primary",
		},
		{
			url:      "https://oxford.ac.uk/research",
			expected: model.TierPrimary,
			desc:     ".ac.uk TLD should be primary (UK academic)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_DomainMap(t *testing.T) {
	cfg := &config.AuthorityConfig{
		PrimaryDomains: []string{"example.gov"},
		DomainMap: map[string]string{
			"nytimes.com": "secondary",
			"myblog.com":  "tertiary",
			"example.gov": "tertiary",
		},
	}

	classifier := NewAuthorityClassifier(cfg)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://nytimes.com/article",
			expected: model.TierSecondary,
			desc:     "Explicit domain map to secondary",
		},
		{
			url:      "https://myblog.com/post",
			expected: model.TierTertiary,
			desc:     "Explicit domain map to tertiary",
		},
		{
			url:      "https://example.gov/page",
			expected: model.TierTertiary,
			desc:     "Domain map wins over domain lists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_Defaults(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://www.who.int/news-room",
			expected: model.TierPrimary,
			desc:     "Default primary list",
		},
		{
			url:      "https://www.reuters.com/world/",
			expected: model.TierSecondary,
			desc:     "Default secondary list",
		},
		{
			url:      "https://randomsite.com/page",
			expected: model.TierTertiary,
			desc:     "Unknown domain defaults to tertiary",
		},
		{
			url:      "https://tourism-board.org/visit",
			expected: model.TierTertiary,
			desc:     ".org without other signals defaults to tertiary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_InvalidURLs(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "not-a-url",
			expected: model.TierTertiary,
			desc:     "Invalid URL defaults to tertiary",
		},
		{
			url:      "://missing-scheme",
			expected: model.TierTertiary,
			desc:     "Malformed URL defaults to tertiary",
		},
		{
			url:      "",
			expected: model.TierTertiary,
			desc:     "Empty URL defaults to tertiary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_PortHandling(t *testing.T) {
	cfg := &config.AuthorityConfig{
		PrimaryDomains: []string{"example.gov"},
	}

	classifier := NewAuthorityClassifier(cfg)

	for _, u := range []string{"https://example.gov:443/page", "http://example.gov:8080/page"} {
		if got := classifier.Classify(u); got != model.TierPrimary {
			t.Errorf("Expected primary for %s, got %v", u, got)
		}
	}
}

func TestAuthorityClassifier_Tally(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	counts := classifier.Tally([]string{
		"https://www.who.int/a",
		"https://census.gov/b",
		"https://apnews.com/c",
		"https://someblog.net/d",
	})

	if counts[model.TierPrimary] != 2 || counts[model.TierSecondary] != 1 || counts[model.TierTertiary] != 1 {
		t.Errorf("Unexpected tally %v", counts)
	}
}

func TestParseTierString(t *testing.T) {
	tests := []struct {
		input    string
		expected model.AuthorityTier
		desc     string
	}{
		{input: "primary", expected: model.TierPrimary, desc: "lowercase primary"},
		{input: "PRIMARY", expected: model.TierPrimary, desc: "uppercase primary"},
		{input: "1", expected: model.TierPrimary, desc: "numeric 1 as primary"},
		{input: "secondary", expected: model.TierSecondary, desc: "lowercase secondary"},
		{input: "2", expected: model.TierSecondary, desc: "numeric 2 as secondary"},
		{input: "tertiary", expected: model.TierTertiary, desc: "lowercase tertiary"},
		{input: "unknown", expected: model.TierTertiary, desc: "unknown defaults to tertiary"},
		{input: "", expected: model.TierTertiary, desc: "empty defaults to tertiary"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := parseTierString(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.input, result)
			}
		})
	}
}

func TestAuthorityClassifier_Fingerprint(t *testing.T) {
	base := config.Default().Authority
	same := config.Default().Authority
	changed := config.Default().Authority
	changed.SecondaryDomains = append(changed.SecondaryDomains, "example.org")

	a := NewAuthorityClassifier(&base).Fingerprint()
	if a == "" {
		t.Fatal("Expected non-empty fingerprint")
	}
	if b := NewAuthorityClassifier(&same).Fingerprint(); a != b {
		t.Errorf("Expected equal configs to share a fingerprint, got %s and %s", a, b)
	}
	if c := NewAuthorityClassifier(&changed).Fingerprint(); a == c {
		t.Error("Expected a changed domain list to change the fingerprint")
	}
	if NewScorer(NewAuthorityClassifier(&base)).Fingerprint() == NewScorer(NewAuthorityClassifier(&changed)).Fingerprint() {
		t.Error("Expected scorer fingerprint to follow its classifier")
	}
}
