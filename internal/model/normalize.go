package model

import (
	"errors"
	"math"
	"net/url"
	"strings"
)

// ErrBlankName is returned when a source name is empty after trimming
var ErrBlankName = errors.New("source name cannot be empty")

// NormalizeTags trims tags, drops empty ones, and removes case-insensitive
// duplicates keeping the first spelling and the original order
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}

	return out
}

// DedupeURLs canonicalizes URLs and removes duplicates, first occurrence wins
func DedupeURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]bool, len(urls))

	for _, raw := range urls {
		u := CanonicalURL(raw)
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}

	return out
}

// CanonicalURL returns the canonical string form of an absolute URL:
// lowercase scheme and host, "/" for an empty path. Values that do not parse
// as absolute URLs are returned trimmed but otherwise untouched, so the URL
// constraint can reject them.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" && u.RawPath == "" && u.Opaque == "" {
		u.Path = "/"
	}

	return u.String()
}

// NormalizeName trims a source name and rejects blank names
func NormalizeName(name string) (string, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return "", ErrBlankName
	}
	return normalized, nil
}

// ClampScore forces a score into [0, 1]. NaN is returned unchanged.
func ClampScore(score float64) float64 {
	if math.IsNaN(score) {
		return score
	}
	return math.Max(0, math.Min(1, score))
}

// WordCount counts maximal runs of non-whitespace characters
func WordCount(content string) int {
	return len(strings.Fields(content))
}
