package score

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/newsanalyst/newsanalyst/internal/config"
	"github.com/newsanalyst/newsanalyst/internal/model"
)

// AuthorityClassifier classifies fact-check sources into authority tiers
type AuthorityClassifier struct {
	config       *config.AuthorityConfig
	primaryMap   map[string]bool
	secondaryMap map[string]bool
	pathPatterns []*compiledPattern
	fingerprint  string
}

type compiledPattern struct {
	pattern *regexp.Regexp
	tier    model.AuthorityTier
}

// NewAuthorityClassifier creates a new authority classifier. A nil config uses the built-in domain lists.
func NewAuthorityClassifier(cfg *config.AuthorityConfig) *AuthorityClassifier {
	if cfg == nil {
		defaults := config.Default().Authority
		cfg = &defaults
	}

	classifier := &AuthorityClassifier{
		config:       cfg,
		primaryMap:   make(map[string]bool),
		secondaryMap: make(map[string]bool),
		pathPatterns: make([]*compiledPattern, 0),
	}

	for _, domain := range cfg.PrimaryDomains {
		classifier.primaryMap[strings.ToLower(domain)] = true
	}

	for _, domain := range cfg.SecondaryDomains {
		classifier.secondaryMap[strings.ToLower(domain)] = true
	}

	// Invalid patterns are skipped
	for _, pp := range cfg.PathPatterns {
		if re, err := regexp.Compile(pp.Pattern); err == nil {
			classifier.pathPatterns = append(classifier.pathPatterns, &compiledPattern{
				pattern: re,
				tier:    parseTierString(pp.Tier),
			})
		}
	}

	classifier.fingerprint = configDigest(cfg)

	return classifier
}

// Fingerprint identifies the classification rules. Classifiers built from
// equal configurations share a fingerprint.
func (a *AuthorityClassifier) Fingerprint() string {
	return a.fingerprint
}

func configDigest(cfg *config.AuthorityConfig) string {
	// Map keys marshal in sorted order, so equal configs hash equally
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Classify classifies a URL into an authority tier
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.TierTertiary
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return model.TierTertiary
	}

	if tierStr, ok := a.config.DomainMap[host]; ok {
		return parseTierString(tierStr)
	}

	if matchesDomain(host, a.primaryMap) {
		return model.TierPrimary
	}

	if matchesDomain(host, a.secondaryMap) {
		return model.TierSecondary
	}

	for _, cp := range a.pathPatterns {
		if cp.pattern.MatchString(parsed.Path) {
			return cp.tier
		}
	}

	// Government and academic TLDs
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// Tally counts the tiers of a set of source URLs
func (a *AuthorityClassifier) Tally(urls []string) map[model.AuthorityTier]int {
	counts := make(map[model.AuthorityTier]int, 3)
	for _, u := range urls {
		counts[a.Classify(u)]++
	}
	return counts
}

// matchesDomain checks for an exact match or a subdomain (news.bbc.co.uk matches bbc.co.uk)
func matchesDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for domain := range domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// parseTierString converts a tier string to AuthorityTier
func parseTierString(tier string) model.AuthorityTier {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case "primary", "1":
		return model.TierPrimary
	case "secondary", "2":
		return model.TierSecondary
	default:
		return model.TierTertiary
	}
}
