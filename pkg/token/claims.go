package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the application-facing payload carried inside every token.
// Data is opaque to this library except for role extraction during
// authorization; it survives a JSON round-trip, so after decode it is
// typically a map[string]any.
type Identity struct {
	App  string `json:"app"`
	Sub  string `json:"sub"`
	Data any    `json:"data,omitempty"`
}

// Claims is the full wire payload. The registered exp bounds access validity;
// rtexp bounds refresh eligibility and is always >= exp at issuance.
type Claims struct {
	RefreshExpiresAt *jwt.NumericDate `json:"rtexp,omitempty"`
	UData            Identity         `json:"udata"`
	jwt.RegisteredClaims
}

// AccessAliveAt reports whether the access window covers t.
func (c *Claims) AccessAliveAt(t time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.Time.Before(t)
}

// RefreshAliveAt reports whether the refresh window covers t.
func (c *Claims) RefreshAliveAt(t time.Time) bool {
	return c.RefreshExpiresAt != nil && !c.RefreshExpiresAt.Time.Before(t)
}
