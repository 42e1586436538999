// Package extract finds checkable claim candidates in article text.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/newsanalyst/newsanalyst/internal/model"
)

// Claim text bounds, in characters
const (
	MinClaimLength = 10
	MaxClaimLength = 1000
	maxContext     = 500
)

// Candidate is an unverified claim proposed for fact-checking
type Candidate struct {
	Claim     model.FactCheckClaim `json:"claim"`
	Heuristic string               `json:"heuristic"` // "keyword:<keyword>"
	Sentence  int                  `json:"sentence"`  // index of the sentence in the text
}

// ClaimExtractor extracts claim candidates by keyword matching
type ClaimExtractor struct {
	keywords []string
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{
		keywords: []string{
			"according to", "percent", "%", "reported", "confirmed",
			"announced", "study", "survey", "statistics", "data show",
			"million", "billion", "increased", "decreased", "rose", "fell",
			"doubled", "record", "official", "estimated",
		},
	}
}

// WithKeywords replaces the keyword list. Matching is case-insensitive.
func (e *ClaimExtractor) WithKeywords(keywords ...string) *ClaimExtractor {
	e.keywords = make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			e.keywords = append(e.keywords, k)
		}
	}
	return e
}

// Extract extracts candidates from plain text
func (e *ClaimExtractor) Extract(text string) []Candidate {
	return e.extract(text, "")
}

// ExtractHTML extracts candidates from the visible text of an HTML document
func (e *ClaimExtractor) ExtractHTML(htmlContent string) ([]Candidate, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return e.extract(extractVisibleText(doc), ""), nil
}

// ExtractArticle extracts candidates from an article's content, noting the article title as context
func (e *ClaimExtractor) ExtractArticle(a *model.Article) []Candidate {
	context := ""
	if a.Title != "" {
		context = truncate("From article: "+a.Title, maxContext)
	}
	return e.extract(a.Content, context)
}

func (e *ClaimExtractor) extract(text, context string) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)

	for i, sentence := range splitSentences(text) {
		keyword, ok := e.match(sentence)
		if !ok {
			continue
		}

		key := strings.ToLower(sentence)
		if seen[key] {
			continue
		}

		claim, err := model.NewFactCheckClaim(model.FactCheckClaim{
			ClaimText:          sentence,
			VerificationStatus: model.StatusUnverified,
			Context:            context,
		})
		if err != nil {
			continue
		}

		seen[key] = true
		candidates = append(candidates, Candidate{
			Claim:     *claim,
			Heuristic: "keyword:" + keyword,
			Sentence:  i,
		})
	}

	return candidates
}

// match returns the first keyword found in the sentence
func (e *ClaimExtractor) match(sentence string) (string, bool) {
	lower := strings.ToLower(sentence)
	for _, keyword := range e.keywords {
		if strings.Contains(lower, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// Claims unwraps the claims of a candidate list
func Claims(candidates []Candidate) []model.FactCheckClaim {
	out := make([]model.FactCheckClaim, len(candidates))
	for i := range candidates {
		out[i] = candidates[i].Claim
	}
	return out
}

// extractVisibleText extracts text nodes from HTML, skipping scripts and styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		// Block boundaries end a sentence even without punctuation
		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteString("\n")
		}
	}

	walk(n)
	return buf.String()
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "tr", "br", "section", "article":
		return true
	}
	return false
}

// splitSentences splits on terminators followed by whitespace and on line
// breaks, keeping sentences within the claim length bounds
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.Join(strings.Fields(current.String()), " ")
		current.Reset()
		n := utf8.RuneCountInString(sentence)
		if n >= MinClaimLength && n <= MaxClaimLength {
			sentences = append(sentences, sentence)
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t' || runes[i+1] == '\n' {
				flush()
			}
		}
	}
	flush()

	return sentences
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
