package model

import "fmt"

// BiasRating is the editorial lean assigned to a news source
type BiasRating string

const (
	BiasLeft        BiasRating = "left"
	BiasLeftCenter  BiasRating = "left_center"
	BiasCenter      BiasRating = "center"
	BiasRightCenter BiasRating = "right_center"
	BiasRight       BiasRating = "right"
	BiasUnknown     BiasRating = "unknown"
)

// BiasRatings lists every bias rating in declaration order
var BiasRatings = []BiasRating{BiasLeft, BiasLeftCenter, BiasCenter, BiasRightCenter, BiasRight, BiasUnknown}

func (b BiasRating) IsValid() bool { return contains(BiasRatings, b) }
func (b BiasRating) String() string { return string(b) }

// ParseBiasRating converts a raw string into a BiasRating
func ParseBiasRating(s string) (BiasRating, error) {
	return parseEnum(BiasRatings, "bias rating", s)
}

// CredibilityRating is the reliability assigned to a news source
type CredibilityRating string

const (
	CredibilityVeryHigh CredibilityRating = "very_high"
	CredibilityHigh     CredibilityRating = "high"
	CredibilityMixed    CredibilityRating = "mixed"
	CredibilityLow      CredibilityRating = "low"
	CredibilityVeryLow  CredibilityRating = "very_low"
	CredibilityUnknown  CredibilityRating = "unknown"
)

// CredibilityRatings lists every credibility rating in declaration order
var CredibilityRatings = []CredibilityRating{
	CredibilityVeryHigh, CredibilityHigh, CredibilityMixed, CredibilityLow, CredibilityVeryLow, CredibilityUnknown,
}

func (c CredibilityRating) IsValid() bool { return contains(CredibilityRatings, c) }
func (c CredibilityRating) String() string { return string(c) }

// ParseCredibilityRating converts a raw string into a CredibilityRating
func ParseCredibilityRating(s string) (CredibilityRating, error) {
	return parseEnum(CredibilityRatings, "credibility rating", s)
}

// VerificationStatus is the fact-check outcome of a claim
type VerificationStatus string

const (
	StatusTrue          VerificationStatus = "true"
	StatusFalse         VerificationStatus = "false"
	StatusPartiallyTrue VerificationStatus = "partially_true"
	StatusMisleading    VerificationStatus = "misleading"
	StatusUnverified    VerificationStatus = "unverified"
	StatusDisputed      VerificationStatus = "disputed"
)

// VerificationStatuses lists every verification status in declaration order
var VerificationStatuses = []VerificationStatus{
	StatusTrue, StatusFalse, StatusPartiallyTrue, StatusMisleading, StatusUnverified, StatusDisputed,
}

func (s VerificationStatus) IsValid() bool { return contains(VerificationStatuses, s) }
func (s VerificationStatus) String() string { return string(s) }

// ParseVerificationStatus converts a raw string into a VerificationStatus
func ParseVerificationStatus(s string) (VerificationStatus, error) {
	return parseEnum(VerificationStatuses, "verification status", s)
}

// SentimentLabel classifies emotional tone
type SentimentLabel string

const (
	SentimentVeryPositive SentimentLabel = "very_positive"
	SentimentPositive     SentimentLabel = "positive"
	SentimentNeutral      SentimentLabel = "neutral"
	SentimentNegative     SentimentLabel = "negative"
	SentimentVeryNegative SentimentLabel = "very_negative"
)

// SentimentLabels lists every sentiment label in declaration order
var SentimentLabels = []SentimentLabel{
	SentimentVeryPositive, SentimentPositive, SentimentNeutral, SentimentNegative, SentimentVeryNegative,
}

func (l SentimentLabel) IsValid() bool { return contains(SentimentLabels, l) }
func (l SentimentLabel) String() string { return string(l) }

// ParseSentimentLabel converts a raw string into a SentimentLabel
func ParseSentimentLabel(s string) (SentimentLabel, error) {
	return parseEnum(SentimentLabels, "sentiment label", s)
}

// BiasLabel is the bucket derived from a continuous bias score
type BiasLabel string

const (
	LabelLeftBias      BiasLabel = "left_bias"
	LabelLeftCenter    BiasLabel = "left_center"
	LabelCenterNeutral BiasLabel = "center_neutral"
	LabelRightCenter   BiasLabel = "right_center"
	LabelRightBias     BiasLabel = "right_bias"
)

func (l BiasLabel) String() string { return string(l) }

// DisplayName returns the human-readable form of the label
func (l BiasLabel) DisplayName() string {
	switch l {
	case LabelLeftBias:
		return "Left Bias"
	case LabelLeftCenter:
		return "Left-Center"
	case LabelCenterNeutral:
		return "Center/Neutral"
	case LabelRightCenter:
		return "Right-Center"
	case LabelRightBias:
		return "Right Bias"
	default:
		return string(l)
	}
}

// CredibilityLabel is the bucket derived from a continuous credibility score
type CredibilityLabel string

const (
	LabelVeryHigh CredibilityLabel = "very_high"
	LabelHigh     CredibilityLabel = "high"
	LabelMixed    CredibilityLabel = "mixed"
	LabelLow      CredibilityLabel = "low"
	LabelVeryLow  CredibilityLabel = "very_low"
)

func (l CredibilityLabel) String() string { return string(l) }

// DisplayName returns the human-readable form of the label
func (l CredibilityLabel) DisplayName() string {
	switch l {
	case LabelVeryHigh:
		return "Very High"
	case LabelHigh:
		return "High"
	case LabelMixed:
		return "Mixed"
	case LabelLow:
		return "Low"
	case LabelVeryLow:
		return "Very Low"
	default:
		return string(l)
	}
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](set []T, what, raw string) (T, error) {
	v := T(raw)
	if !contains(set, v) {
		return "", fmt.Errorf("invalid %s %q (allowed: %v)", what, raw, set)
	}
	return v, nil
}
