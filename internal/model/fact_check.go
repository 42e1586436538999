package model

import (
	"strings"
	"time"
)

// FactCheckClaim is a single verifiable assertion extracted from an article
type FactCheckClaim struct {
	Identity
	Timestamps

	ClaimText          string             `json:"claim_text" validate:"min=10,max=1000"`
	VerificationStatus VerificationStatus `json:"verification_status" validate:"enum"`
	Sources            []string           `json:"sources" validate:"dive,http_url"`
	Confidence         float64            `json:"confidence" validate:"gte=0,lte=1"`
	Context            string             `json:"context,omitempty" validate:"max=500"`
	VerificationNotes  string             `json:"verification_notes,omitempty" validate:"max=1000"`
}

// NewFactCheckClaim applies defaults, normalizes, and validates a claim.
// On failure no record is returned.
func NewFactCheckClaim(c FactCheckClaim) (*FactCheckClaim, error) {
	rec := c.clone()
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate applies defaults and normalization in place, then checks every constraint
func (c *FactCheckClaim) Validate() error {
	c.prepare(nowFunc())
	return check("fact_check_claim", c)
}

// Update applies fn to a copy of the claim and commits it only if the result validates.
// Status changes are unrestricted: any status may follow any other.
func (c *FactCheckClaim) Update(fn func(*FactCheckClaim)) error {
	next := c.clone()
	fn(next)
	if err := next.Validate(); err != nil {
		return err
	}
	next.touch(nowFunc())
	*c = *next
	return nil
}

// IsVerified reports whether the claim has any status other than unverified
func (c *FactCheckClaim) IsVerified() bool {
	return c.VerificationStatus != StatusUnverified
}

// IsCredible reports whether the claim was found true or partially true
func (c *FactCheckClaim) IsCredible() bool {
	return c.VerificationStatus == StatusTrue || c.VerificationStatus == StatusPartiallyTrue
}

func (c *FactCheckClaim) prepare(now time.Time) {
	c.ensureID()
	c.ensureCreated(now)
	if c.VerificationStatus == "" {
		c.VerificationStatus = StatusUnverified
	}

	c.ClaimText = strings.TrimSpace(c.ClaimText)
	c.Context = strings.TrimSpace(c.Context)
	c.VerificationNotes = strings.TrimSpace(c.VerificationNotes)
	c.Sources = DedupeURLs(c.Sources)
}

func (c *FactCheckClaim) clone() *FactCheckClaim {
	cp := *c
	cp.Sources = cloneStrings(c.Sources)
	return &cp
}
