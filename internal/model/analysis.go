package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultAnalysisVersion is stamped on results that do not name a version
const DefaultAnalysisVersion = "1.0"

// Sentiment is the emotional-tone classification of an article.
// Scores holds raw per-class values and is not required to sum to one.
type Sentiment struct {
	Label      SentimentLabel     `json:"label" validate:"required,enum"`
	Confidence float64            `json:"confidence" validate:"gte=0,lte=1"`
	Scores     map[string]float64 `json:"scores,omitempty"`
}

// NewSentiment validates a sentiment value. On failure no value is returned.
func NewSentiment(s Sentiment) (*Sentiment, error) {
	rec := s.clone()
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate checks every constraint of the sentiment
func (s *Sentiment) Validate() error {
	return check("sentiment", s)
}

func (s *Sentiment) clone() *Sentiment {
	c := *s
	if s.Scores != nil {
		c.Scores = make(map[string]float64, len(s.Scores))
		for k, v := range s.Scores {
			c.Scores[k] = v
		}
	}
	return &c
}

// AnalysisResult aggregates the analysis of one article.
//
// ArticleID is a plain reference: nothing checks that the article exists.
// BiasScore and CredibilityScore are clamped into [0, 1] during
// normalization, so out-of-range inputs are corrected rather than rejected;
// the declared range check still runs afterwards and only trips on NaN.
type AnalysisResult struct {
	Identity
	Timestamps

	ArticleID        uuid.UUID        `json:"article_id" validate:"required"`
	BiasScore        float64          `json:"bias_score" validate:"gte=0,lte=1"`
	CredibilityScore float64          `json:"credibility_score" validate:"gte=0,lte=1"`
	Sentiment        Sentiment        `json:"sentiment"`
	FactCheckClaims  []FactCheckClaim `json:"fact_check_claims" validate:"dive"`
	Summary          string           `json:"summary,omitempty" validate:"max=1000"`
	AnalyzedAt       time.Time        `json:"analyzed_at"`
	AnalysisVersion  string           `json:"analysis_version"`
	ProcessingTimeMS *int64           `json:"processing_time_ms,omitempty" validate:"omitempty,gte=0"`
	ConfidenceScore  float64          `json:"confidence_score" validate:"gte=0,lte=1"`
}

// NewAnalysisResult applies defaults, clamps scores, normalizes the owned
// claims, and validates the whole aggregate. On failure no record is returned.
func NewAnalysisResult(r AnalysisResult) (*AnalysisResult, error) {
	rec := r.clone()
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate applies defaults and normalization in place, then checks every
// constraint including the embedded sentiment and each claim
func (r *AnalysisResult) Validate() error {
	now := nowFunc()

	r.ensureID()
	r.ensureCreated(now)
	if r.AnalyzedAt.IsZero() {
		r.AnalyzedAt = now
	}
	r.AnalysisVersion = strings.TrimSpace(r.AnalysisVersion)
	if r.AnalysisVersion == "" {
		r.AnalysisVersion = DefaultAnalysisVersion
	}
	r.Summary = strings.TrimSpace(r.Summary)

	r.BiasScore = ClampScore(r.BiasScore)
	r.CredibilityScore = ClampScore(r.CredibilityScore)

	if r.FactCheckClaims == nil {
		r.FactCheckClaims = []FactCheckClaim{}
	}
	for i := range r.FactCheckClaims {
		r.FactCheckClaims[i].prepare(now)
	}

	return check("analysis_result", r)
}

// Update applies fn to a copy of the result and commits it only if the result validates
func (r *AnalysisResult) Update(fn func(*AnalysisResult)) error {
	next := r.clone()
	fn(next)
	if err := next.Validate(); err != nil {
		return err
	}
	next.touch(nowFunc())
	*r = *next
	return nil
}

// BiasLabel buckets the bias score
func (r *AnalysisResult) BiasLabel() BiasLabel {
	return BiasLabelFor(r.BiasScore)
}

// CredibilityLabel buckets the credibility score
func (r *AnalysisResult) CredibilityLabel() CredibilityLabel {
	return CredibilityLabelFor(r.CredibilityScore)
}

// HasVerifiedClaims reports whether any owned claim has been fact-checked
func (r *AnalysisResult) HasVerifiedClaims() bool {
	return HasVerifiedClaims(r.FactCheckClaims)
}

// CredibleClaimsRatio is the share of credible claims among verified ones
func (r *AnalysisResult) CredibleClaimsRatio() float64 {
	return CredibleClaimsRatio(r.FactCheckClaims)
}

func (r *AnalysisResult) clone() *AnalysisResult {
	c := *r
	c.Sentiment = *r.Sentiment.clone()
	if r.FactCheckClaims != nil {
		c.FactCheckClaims = make([]FactCheckClaim, len(r.FactCheckClaims))
		for i := range r.FactCheckClaims {
			c.FactCheckClaims[i] = *r.FactCheckClaims[i].clone()
		}
	}
	if r.ProcessingTimeMS != nil {
		ms := *r.ProcessingTimeMS
		c.ProcessingTimeMS = &ms
	}
	return &c
}

// BiasLabelFor maps a bias score to its bucket. Each boundary belongs to the
// bucket above it: 0.3 is left_center, 0.6 is right_center.
func BiasLabelFor(score float64) BiasLabel {
	switch {
	case score < 0.3:
		return LabelLeftBias
	case score < 0.4:
		return LabelLeftCenter
	case score < 0.6:
		return LabelCenterNeutral
	case score < 0.7:
		return LabelRightCenter
	default:
		return LabelRightBias
	}
}

// CredibilityLabelFor maps a credibility score to its bucket. Each boundary
// belongs to the higher bucket: 0.8 is very_high, 0.6 is high.
func CredibilityLabelFor(score float64) CredibilityLabel {
	switch {
	case score >= 0.8:
		return LabelVeryHigh
	case score >= 0.6:
		return LabelHigh
	case score >= 0.4:
		return LabelMixed
	case score >= 0.2:
		return LabelLow
	default:
		return LabelVeryLow
	}
}

// HasVerifiedClaims reports whether at least one claim is verified
func HasVerifiedClaims(claims []FactCheckClaim) bool {
	for i := range claims {
		if claims[i].IsVerified() {
			return true
		}
	}
	return false
}

// CredibleClaimsRatio divides credible claims by verified claims (not by all
// claims). With no verified claims the ratio is 0.
func CredibleClaimsRatio(claims []FactCheckClaim) float64 {
	verified, credible := 0, 0
	for i := range claims {
		if !claims[i].IsVerified() {
			continue
		}
		verified++
		if claims[i].IsCredible() {
			credible++
		}
	}

	if verified == 0 {
		return 0
	}
	return float64(credible) / float64(verified)
}
