// Package score turns analysis results into assessments with transparent signals.
package score

import (
	"fmt"
	"math"
	"time"

	"github.com/newsanalyst/newsanalyst/internal/model"
)

// scoringVersion changes whenever signal rules or thresholds change
const scoringVersion = "v1"

// Signal thresholds
const (
	neutralBand        = 0.1 // |bias - 0.5| at or below this is neutral
	strongLean         = 0.3 // |bias - 0.5| above this is a strong lean
	lowConfidence      = 0.5
	veryLowConfidence  = 0.25
	highConfidence     = 0.8
	minVerifiedForHigh = 3
)

// Scorer derives assessments and diagnostic signals from analysis results
type Scorer struct {
	authority *AuthorityClassifier
	now       func() time.Time
}

// NewScorer creates a new scorer. A nil classifier uses the built-in domain lists.
func NewScorer(authority *AuthorityClassifier) *Scorer {
	if authority == nil {
		authority = NewAuthorityClassifier(nil)
	}
	return &Scorer{
		authority: authority,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Fingerprint identifies every setting besides the result itself that shapes
// an assessment. Cached assessments are only valid for the same fingerprint.
func (s *Scorer) Fingerprint() string {
	return scoringVersion + ":" + s.authority.Fingerprint()
}

// Assess derives the assessment of a validated result. The result is not modified.
func (s *Scorer) Assess(r *model.AnalysisResult) model.Assessment {
	verified := 0
	for i := range r.FactCheckClaims {
		if r.FactCheckClaims[i].IsVerified() {
			verified++
		}
	}

	signals := []model.Signal{
		s.biasLean(r.BiasScore),
		s.credibility(r.CredibilityScore),
		s.claimSupport(r.FactCheckClaims, verified),
		s.sourceAuthority(r.FactCheckClaims),
	}

	if sig, ok := s.sentimentExtreme(r.Sentiment); ok {
		signals = append(signals, sig)
	}

	if sig, ok := s.lowConfidence(r.ConfidenceScore); ok {
		signals = append(signals, sig)
	}

	return model.Assessment{
		ResultID:            r.ID,
		ArticleID:           r.ArticleID,
		AssessedAt:          s.now(),
		BiasScore:           r.BiasScore,
		BiasLabel:           r.BiasLabel(),
		CredibilityScore:    r.CredibilityScore,
		CredibilityLabel:    r.CredibilityLabel(),
		Sentiment:           r.Sentiment.Label,
		Claims:              len(r.FactCheckClaims),
		VerifiedClaims:      verified,
		HasVerifiedClaims:   r.HasVerifiedClaims(),
		CredibleClaimsRatio: r.CredibleClaimsRatio(),
		Confidence:          determineConfidence(r.ConfidenceScore, verified),
		Signals:             signals,
	}
}

// biasLean reports the distance of the bias score from the neutral midpoint
func (s *Scorer) biasLean(bias float64) model.Signal {
	distance := math.Abs(bias - 0.5)
	label := model.BiasLabelFor(bias)

	severity := model.SeverityInfo
	if distance > strongLean {
		severity = model.SeverityCritical
	} else if distance > neutralBand {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalBiasLean,
		Severity:    severity,
		Description: fmt.Sprintf("Bias %.2f (%s), %.2f from neutral", bias, label.DisplayName(), distance),
		Data: map[string]interface{}{
			"bias_score": bias,
			"label":      string(label),
			"distance":   distance,
			"formula":    "|bias_score - 0.5|",
		},
	}
}

// credibility reports the credibility bucket
func (s *Scorer) credibility(score float64) model.Signal {
	label := model.CredibilityLabelFor(score)

	severity := model.SeverityInfo
	switch label {
	case model.LabelMixed:
		severity = model.SeverityWarning
	case model.LabelLow, model.LabelVeryLow:
		severity = model.SeverityCritical
	}

	return model.Signal{
		Type:        model.SignalCredibility,
		Severity:    severity,
		Description: fmt.Sprintf("Credibility %.2f (%s)", score, label.DisplayName()),
		Data: map[string]interface{}{
			"credibility_score": score,
			"label":             string(label),
		},
	}
}

// claimSupport reports how many claims were verified and how many of those held up
func (s *Scorer) claimSupport(claims []model.FactCheckClaim, verified int) model.Signal {
	if len(claims) == 0 {
		return model.Signal{
			Type:        model.SignalClaimSupport,
			Severity:    model.SeverityWarning,
			Description: "No fact-check claims attached",
			Data:        map[string]interface{}{"claims": 0},
		}
	}

	if verified == 0 {
		return model.Signal{
			Type:        model.SignalClaimSupport,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("None of %d claims verified", len(claims)),
			Data: map[string]interface{}{
				"claims":   len(claims),
				"verified": 0,
			},
		}
	}

	ratio := model.CredibleClaimsRatio(claims)

	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityCritical
	} else if ratio < 0.75 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalClaimSupport,
		Severity:    severity,
		Description: fmt.Sprintf("Credible claims: %.0f%% of %d verified (%d total)", ratio*100, verified, len(claims)),
		Data: map[string]interface{}{
			"claims":   len(claims),
			"verified": verified,
			"ratio":    ratio,
			"formula":  "credible_verified / verified",
		},
	}
}

// sourceAuthority reports the authority tiers of every source cited by the claims
func (s *Scorer) sourceAuthority(claims []model.FactCheckClaim) model.Signal {
	var urls []string
	for i := range claims {
		urls = append(urls, claims[i].Sources...)
	}

	if len(urls) == 0 {
		return model.Signal{
			Type:        model.SignalSourceAuthority,
			Severity:    model.SeverityWarning,
			Description: "No claim sources cited",
			Data:        map[string]interface{}{"sources": 0},
		}
	}

	counts := s.authority.Tally(urls)
	primary := counts[model.TierPrimary]
	secondary := counts[model.TierSecondary]
	tertiary := counts[model.TierTertiary]

	total := len(urls)
	weighted := float64(primary*3+secondary*2+tertiary) / float64(total*3)

	severity := model.SeverityInfo
	if primary == 0 && secondary == 0 {
		severity = model.SeverityCritical
	} else if primary == 0 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalSourceAuthority,
		Severity:    severity,
		Description: fmt.Sprintf("Source authority: %d primary, %d secondary, %d tertiary", primary, secondary, tertiary),
		Data: map[string]interface{}{
			"primary":   primary,
			"secondary": secondary,
			"tertiary":  tertiary,
			"total":     total,
			"weighted":  weighted,
			"formula":   "(primary*3 + secondary*2 + tertiary*1) / (total*3)",
		},
	}
}

// sentimentExtreme flags very positive or very negative tone
func (s *Scorer) sentimentExtreme(sent model.Sentiment) (model.Signal, bool) {
	if sent.Label != model.SentimentVeryPositive && sent.Label != model.SentimentVeryNegative {
		return model.Signal{}, false
	}

	return model.Signal{
		Type:        model.SignalSentimentExtreme,
		Severity:    model.SeverityWarning,
		Description: fmt.Sprintf("Extreme sentiment: %s (confidence %.2f)", sent.Label, sent.Confidence),
		Data: map[string]interface{}{
			"label":      string(sent.Label),
			"confidence": sent.Confidence,
		},
	}, true
}

// lowConfidence flags results the analyzer itself was unsure about
func (s *Scorer) lowConfidence(score float64) (model.Signal, bool) {
	if score >= lowConfidence {
		return model.Signal{}, false
	}

	severity := model.SeverityWarning
	if score < veryLowConfidence {
		severity = model.SeverityCritical
	}

	return model.Signal{
		Type:        model.SignalLowConfidence,
		Severity:    severity,
		Description: fmt.Sprintf("Analyzer confidence %.2f below %.2f", score, lowConfidence),
		Data: map[string]interface{}{
			"confidence_score": score,
			"threshold":        lowConfidence,
		},
	}, true
}

// determineConfidence determines the overall confidence of the assessment
func determineConfidence(score float64, verified int) string {
	if score < lowConfidence || verified == 0 {
		return "low"
	}

	if score >= highConfidence && verified >= minVerifiedForHigh {
		return "high"
	}
	return "medium"
}
