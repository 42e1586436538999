package model

import (
	"time"

	"github.com/google/uuid"
)

// Assessment is the derived, human-facing view of an AnalysisResult.
// It is computed on demand and never stored back on the result.
type Assessment struct {
	ResultID            uuid.UUID        `json:"result_id"`
	ArticleID           uuid.UUID        `json:"article_id"`
	AssessedAt          time.Time        `json:"assessed_at"`
	BiasScore           float64          `json:"bias_score"`
	BiasLabel           BiasLabel        `json:"bias_label"`
	CredibilityScore    float64          `json:"credibility_score"`
	CredibilityLabel    CredibilityLabel `json:"credibility_label"`
	Sentiment           SentimentLabel   `json:"sentiment"`
	Claims              int              `json:"claims"`
	VerifiedClaims      int              `json:"verified_claims"`
	HasVerifiedClaims   bool             `json:"has_verified_claims"`
	CredibleClaimsRatio float64          `json:"credible_claims_ratio"`
	Confidence          string           `json:"confidence"` // "low", "medium", "high"
	Signals             []Signal         `json:"signals"`
}

// Signal is a diagnostic observation with the data that produced it
type Signal struct {
	Type        SignalType     `json:"type"`
	Severity    SignalSeverity `json:"severity"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data,omitempty"`
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalBiasLean         SignalType = "bias_lean"         // Distance from the neutral band
	SignalCredibility      SignalType = "credibility"       // Credibility bucket
	SignalClaimSupport     SignalType = "claim_support"     // Verified/credible claim balance
	SignalSentimentExtreme SignalType = "sentiment_extreme" // Very positive or very negative tone
	SignalSourceAuthority  SignalType = "source_authority"  // Authority tiers of claim sources
	SignalLowConfidence    SignalType = "low_confidence"    // Analyzer was unsure
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// AuthorityTier ranks the origin of a claim source
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Government, courts, academic publishers
	TierSecondary AuthorityTier = 2 // Wire services, established newsrooms, fact-checkers
	TierTertiary  AuthorityTier = 3 // Blogs, social media, everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}
