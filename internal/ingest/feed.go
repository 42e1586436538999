// Package ingest converts local RSS and Atom documents into news records.
package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/newsanalyst/newsanalyst/internal/logging"
	"github.com/newsanalyst/newsanalyst/internal/model"
)

// Length limits of the record fields filled from feed text
const (
	maxSource      = 100
	maxAuthor      = 200
	maxSummary     = 1000
	maxDescription = 500
	maxLanguage    = 5
)

// ItemError reports a feed item that did not produce a valid article
type ItemError struct {
	Index int    `json:"index"`
	Link  string `json:"link,omitempty"`
	Err   error  `json:"-"`
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d (%s): %v", e.Index, e.Link, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// Result is the outcome of importing one feed
type Result struct {
	FeedTitle string
	Source    *model.NewsSource // nil when the feed metadata does not form a valid source
	SourceErr error
	Articles  []*model.Article
	Errors    []ItemError
}

// FeedImporter turns feed documents into articles and a news source
type FeedImporter struct {
	logger *slog.Logger
}

// NewFeedImporter creates an importer. A nil logger discards output.
func NewFeedImporter(logger *slog.Logger) *FeedImporter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &FeedImporter{logger: logger}
}

// ImportFile imports the feed document at path
func (f *FeedImporter) ImportFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer func() { _ = file.Close() }()

	return f.Import(file)
}

// Import parses an RSS, Atom, or JSON feed. Items that fail validation are
// reported in the result; only an unparsable document is an error.
func (f *FeedImporter) Import(r io.Reader) (*Result, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	sourceName := feedName(feed)
	language := normalizeLanguage(feed.Language)

	result := &Result{FeedTitle: feed.Title}

	src, err := model.NewNewsSource(f.sourceFromFeed(feed, sourceName, language))
	if err != nil {
		result.SourceErr = err
		f.logger.Warn("feed metadata is not a valid source", "feed", sourceName, "error", err)
	} else {
		result.Source = src
	}

	for i, item := range feed.Items {
		article, err := model.NewArticle(articleFromItem(item, sourceName, language))
		if err != nil {
			result.Errors = append(result.Errors, ItemError{Index: i, Link: item.Link, Err: err})
			f.logger.Debug("feed item skipped", "index", i, "link", item.Link, "error", err)
			continue
		}
		result.Articles = append(result.Articles, article)
	}

	f.logger.Info("feed imported", "feed", sourceName, "articles", len(result.Articles), "skipped", len(result.Errors))
	return result, nil
}

func (f *FeedImporter) sourceFromFeed(feed *gofeed.Feed, name, language string) model.NewsSource {
	src := model.NewsSource{
		Name:        name,
		URL:         feed.Link,
		Language:    language,
		Description: truncate(htmlText(feed.Description), maxDescription),
	}
	if src.URL == "" {
		src.URL = siteRoot(feed.FeedLink)
	}
	if feed.FeedLink != "" {
		src.RSSFeeds = []string{feed.FeedLink}
	}
	return src
}

func articleFromItem(item *gofeed.Item, source, language string) model.Article {
	description := htmlText(item.Description)
	content := htmlText(item.Content)

	a := model.Article{
		Title:    strings.TrimSpace(item.Title),
		Content:  content,
		URL:      item.Link,
		Source:   source,
		Author:   truncate(itemAuthor(item), maxAuthor),
		Tags:     item.Categories,
		Language: language,
	}

	// Prefer full content as the body; the description then becomes the summary
	if content == "" {
		a.Content = description
	} else if description != "" && description != content {
		a.Summary = truncate(description, maxSummary)
	}

	if t := publishedAt(item); t != nil {
		a.PublishedAt = t
	}

	return a
}

func publishedAt(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		return &t
	}
	if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		return &t
	}
	return nil
}

func itemAuthor(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, p := range item.Authors {
		if p != nil && p.Name != "" {
			return p.Name
		}
	}
	return ""
}

// feedName is the feed title, or the host of its link for untitled feeds
func feedName(feed *gofeed.Feed) string {
	name := strings.TrimSpace(feed.Title)
	if name == "" {
		for _, raw := range []string{feed.Link, feed.FeedLink} {
			if u, err := url.Parse(raw); err == nil && u.Host != "" {
				name = u.Host
				break
			}
		}
	}
	return truncate(name, maxSource)
}

func siteRoot(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host + "/"
}

// normalizeLanguage keeps tags like "en" or "en-us" and reduces longer
// ones to their primary subtag
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if len(lang) <= maxLanguage {
		return lang
	}
	if idx := strings.IndexAny(lang, "-_"); idx > 0 && idx <= maxLanguage {
		return lang[:idx]
	}
	return ""
}

// htmlText strips markup from feed HTML and collapses whitespace
func htmlText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc.Find("script, style, noscript").Remove()

	// Separate block elements so adjacent paragraphs do not run together
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return strings.Join(strings.Fields(doc.Text()), " ")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max]))
}
