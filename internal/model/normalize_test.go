package model

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		desc string
		in   []string
		want []string
	}{
		{
			desc: "mixed case duplicates, blanks and padding",
			in:   []string{"politics", "POLITICS", "news", "", "news", "  world  "},
			want: []string{"politics", "news", "world"},
		},
		{
			desc: "first casing wins",
			in:   []string{"Climate", "climate", "CLIMATE"},
			want: []string{"Climate"},
		},
		{
			desc: "whitespace only entries dropped",
			in:   []string{"   ", "\t", "\n"},
			want: []string{},
		},
		{
			desc: "nil input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := NormalizeTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTags_Idempotent(t *testing.T) {
	in := []string{" a ", "A", "b", "", "B ", "c"}
	once := NormalizeTags(in)
	twice := NormalizeTags(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected idempotent normalization, got %q then %q", once, twice)
	}
}

func TestDedupeURLs(t *testing.T) {
	tests := []struct {
		desc string
		in   []string
		want []string
	}{
		{
			desc: "exact duplicate removed, order kept",
			in:   []string{"https://example.com/rss", "https://example.com/feed", "https://example.com/rss"},
			want: []string{"https://example.com/rss", "https://example.com/feed"},
		},
		{
			desc: "canonical form matches case-different hosts",
			in:   []string{"HTTPS://Example.com/a", "https://example.com/a"},
			want: []string{"https://example.com/a"},
		},
		{
			desc: "empty path canonicalized to slash",
			in:   []string{"https://example.com", "https://example.com/"},
			want: []string{"https://example.com/"},
		},
		{
			desc: "paths stay case sensitive",
			in:   []string{"https://example.com/Feed", "https://example.com/feed"},
			want: []string{"https://example.com/Feed", "https://example.com/feed"},
		},
		{
			desc: "empty input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := DedupeURLs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DedupeURLs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalURL_LeavesInvalidInputAlone(t *testing.T) {
	for _, raw := range []string{"not-a-url", "/relative/path", " example.com "} {
		got := CanonicalURL(raw)
		if got == "" {
			t.Errorf("CanonicalURL(%q) returned empty string", raw)
		}
	}
	if got := CanonicalURL("not-a-url"); got != "not-a-url" {
		t.Errorf("Expected invalid URL untouched, got %q", got)
	}
}

func TestNormalizeName(t *testing.T) {
	got, err := NormalizeName("  BBC News  ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "BBC News" {
		t.Errorf("Expected trimmed name, got %q", got)
	}

	if _, err := NormalizeName("   "); !errors.Is(err, ErrBlankName) {
		t.Errorf("Expected ErrBlankName for blank name, got %v", err)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
	}

	for _, tt := range tests {
		got := ClampScore(tt.in)
		if got != tt.want {
			t.Errorf("ClampScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if again := ClampScore(got); again != got {
			t.Errorf("ClampScore not idempotent for %v: %v then %v", tt.in, got, again)
		}
		if got < 0 || got > 1 {
			t.Errorf("ClampScore(%v) = %v outside [0,1]", tt.in, got)
		}
	}

	if !math.IsNaN(ClampScore(math.NaN())) {
		t.Error("Expected NaN to pass through unchanged")
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"This is a test article with some content to analyze.", 10},
		{"  leading and   trailing  ", 3},
		{"tabs\tand\nnewlines", 3},
		{"", 0},
	}

	for _, tt := range tests {
		if got := WordCount(tt.content); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}
