package model

import (
	"strings"
	"time"
)

// Article represents a scraped news item.
//
// WordCount is derived once: when it is nil at construction (or on the first
// Validate after decoding) it is computed from Content and then left alone.
// Later edits to Content through Update do not refresh it.
type Article struct {
	Identity
	Timestamps

	Title       string     `json:"title" validate:"min=1,max=500"`
	Content     string     `json:"content" validate:"min=10"`
	URL         string     `json:"url" validate:"required,http_url"`
	Source      string     `json:"source" validate:"min=1,max=100"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ScrapedAt   time.Time  `json:"scraped_at"`
	Author      string     `json:"author,omitempty" validate:"max=200"`
	Tags        []string   `json:"tags"`
	Summary     string     `json:"summary,omitempty" validate:"max=1000"`
	Language    string     `json:"language" validate:"min=2,max=5"`
	WordCount   *int       `json:"word_count,omitempty" validate:"omitempty,gte=0"`
}

// NewArticle applies defaults, normalizes, derives the word count, and validates.
// On failure no record is returned.
func NewArticle(a Article) (*Article, error) {
	rec := a.clone()
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate applies defaults and normalization in place, computes a missing
// word count, then checks every constraint
func (a *Article) Validate() error {
	a.applyDefaults(nowFunc())
	a.normalize()
	if a.WordCount == nil {
		wc := WordCount(a.Content)
		a.WordCount = &wc
	}
	return check("article", a)
}

// Update applies fn to a copy of the article and commits it only if the
// result validates. The word count is not recomputed.
func (a *Article) Update(fn func(*Article)) error {
	next := a.clone()
	fn(next)
	next.applyDefaults(nowFunc())
	next.normalize()
	if err := check("article", next); err != nil {
		return err
	}
	next.touch(nowFunc())
	*a = *next
	return nil
}

// Words returns the stored word count, or zero when none was derived
func (a *Article) Words() int {
	if a.WordCount == nil {
		return 0
	}
	return *a.WordCount
}

func (a *Article) applyDefaults(now time.Time) {
	a.ensureID()
	a.ensureCreated(now)
	if a.ScrapedAt.IsZero() {
		a.ScrapedAt = now
	}
	if strings.TrimSpace(a.Language) == "" {
		a.Language = "en"
	}
}

func (a *Article) normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Content = strings.TrimSpace(a.Content)
	a.URL = CanonicalURL(a.URL)
	a.Source = strings.TrimSpace(a.Source)
	a.Author = strings.TrimSpace(a.Author)
	a.Summary = strings.TrimSpace(a.Summary)
	a.Language = strings.TrimSpace(a.Language)
	a.Tags = NormalizeTags(a.Tags)
}

func (a *Article) clone() *Article {
	c := *a
	c.Tags = cloneStrings(a.Tags)
	if a.PublishedAt != nil {
		t := *a.PublishedAt
		c.PublishedAt = &t
	}
	if a.WordCount != nil {
		wc := *a.WordCount
		c.WordCount = &wc
	}
	return &c
}
