package model

import (
	"strings"
	"time"
)

// NewsSource represents a publication outlet
type NewsSource struct {
	Identity
	Timestamps

	Name              string            `json:"name" validate:"max=100"`
	URL               string            `json:"url" validate:"required,http_url"`
	BiasRating        BiasRating        `json:"bias_rating" validate:"enum"`
	CredibilityRating CredibilityRating `json:"credibility_rating" validate:"enum"`
	Active            *bool             `json:"active"`
	Country           string            `json:"country,omitempty" validate:"omitempty,min=2,max=3"`
	Language          string            `json:"language" validate:"min=2,max=5"`
	Description       string            `json:"description,omitempty" validate:"max=500"`
	RSSFeeds          []string          `json:"rss_feeds" validate:"dive,http_url"`
	ScrapingSelectors map[string]string `json:"scraping_selectors,omitempty"`
}

// NewNewsSource applies defaults, normalizes, and validates a news source.
// On failure no record is returned.
func NewNewsSource(s NewsSource) (*NewsSource, error) {
	rec := s.clone()
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate applies defaults and normalization in place, then checks every constraint
func (s *NewsSource) Validate() error {
	s.applyDefaults(nowFunc())
	pre := s.normalize()
	return check("news_source", s, pre...)
}

// Update applies fn to a copy of the source and commits it only if the result validates
func (s *NewsSource) Update(fn func(*NewsSource)) error {
	next := s.clone()
	fn(next)
	if err := next.Validate(); err != nil {
		return err
	}
	next.touch(nowFunc())
	*s = *next
	return nil
}

// IsActive reports whether the source is being scraped (defaults to true)
func (s *NewsSource) IsActive() bool {
	return s.Active == nil || *s.Active
}

// IsReliable reports whether the source has high credibility
func (s *NewsSource) IsReliable() bool {
	return s.CredibilityRating == CredibilityVeryHigh || s.CredibilityRating == CredibilityHigh
}

// IsNeutral reports whether the source has a centrist bias rating
func (s *NewsSource) IsNeutral() bool {
	return s.BiasRating == BiasCenter
}

func (s *NewsSource) applyDefaults(now time.Time) {
	s.ensureID()
	s.ensureCreated(now)
	if s.BiasRating == "" {
		s.BiasRating = BiasUnknown
	}
	if s.CredibilityRating == "" {
		s.CredibilityRating = CredibilityUnknown
	}
	if s.Active == nil {
		s.Active = boolPtr(true)
	}
	if strings.TrimSpace(s.Language) == "" {
		s.Language = "en"
	}
}

func (s *NewsSource) normalize() []FieldError {
	var pre []FieldError

	name, err := NormalizeName(s.Name)
	if err != nil {
		pre = append(pre, FieldError{Field: "name", Constraint: "notblank", Value: s.Name, Message: "cannot be empty"})
	}
	s.Name = name

	s.URL = CanonicalURL(s.URL)
	s.Country = strings.TrimSpace(s.Country)
	s.Language = strings.TrimSpace(s.Language)
	s.Description = strings.TrimSpace(s.Description)
	s.RSSFeeds = DedupeURLs(s.RSSFeeds)

	return pre
}

func (s *NewsSource) clone() *NewsSource {
	c := *s
	c.RSSFeeds = cloneStrings(s.RSSFeeds)
	if s.Active != nil {
		c.Active = boolPtr(*s.Active)
	}
	if s.ScrapingSelectors != nil {
		c.ScrapingSelectors = make(map[string]string, len(s.ScrapingSelectors))
		for k, v := range s.ScrapingSelectors {
			c.ScrapingSelectors[k] = v
		}
	}
	return &c
}
