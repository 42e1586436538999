package model

import (
	"time"

	"github.com/google/uuid"
)

// Identity carries the generated identifier shared by every record
type Identity struct {
	ID uuid.UUID `json:"id"`
}

func (i *Identity) ensureID() {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
}

// Timestamps tracks creation and last update of a record
type Timestamps struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (t *Timestamps) ensureCreated(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
}

func (t *Timestamps) touch(now time.Time) {
	t.UpdatedAt = &now
}

// nowFunc is the clock used for defaults (injectable for tests)
var nowFunc = func() time.Time { return time.Now().UTC() }

func boolPtr(b bool) *bool { return &b }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
