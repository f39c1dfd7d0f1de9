package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrRefreshExpired means the refresh window has passed; the token is
	// permanently dead and a fresh login is required.
	ErrRefreshExpired = errors.New("refresh token expired")
	// ErrRefreshDenied means the refresh policy rejected an otherwise
	// eligible token.
	ErrRefreshDenied = errors.New("refresh denied")
)

// RefreshPolicy decides whether an expired-but-refreshable token may be
// silently renewed. The default allows every eligible token.
type RefreshPolicy interface {
	CanRefresh(c *Claims) bool
}

type allowRefresh struct{}

func (allowRefresh) CanRefresh(*Claims) bool { return true }

// Manager owns token creation, liveness checks, and conditional renewal.
// Tokens are fully self-contained; the manager keeps no per-token state.
type Manager struct {
	codec  *Codec
	ttl    *TTLPolicy
	policy RefreshPolicy
	now    func() time.Time
}

func NewManager(codec *Codec, ttl *TTLPolicy) *Manager {
	return &Manager{
		codec:  codec,
		ttl:    ttl,
		policy: allowRefresh{},
		now:    time.Now,
	}
}

// SetRefreshPolicy installs a custom eligibility check. Setup-time only.
func (m *Manager) SetRefreshPolicy(p RefreshPolicy) {
	if p != nil {
		m.policy = p
	}
}

// SetClock overrides the wall clock, for tests.
func (m *Manager) SetClock(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

func (m *Manager) TTL() *TTLPolicy { return m.ttl }

// Create mints a signed token for userID under appID. data rides along as
// the opaque udata.data payload (typically role/permission info).
func (m *Manager) Create(appID, userID string, data any) (*Claims, string, error) {
	now := m.now()
	claims := &Claims{
		RefreshExpiresAt: jwt.NewNumericDate(now.Add(m.ttl.Refresh(appID))),
		UData:            Identity{App: appID, Sub: userID, Data: data},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl.Access(appID))),
			Issuer:    appID,
			ID:        uuid.NewString(),
		},
	}
	raw, err := m.codec.Encode(claims, true)
	if err != nil {
		return nil, "", err
	}
	return claims, raw, nil
}

// Decode is a convenience pass-through to the codec in secure mode.
func (m *Manager) Decode(raw string) (*Claims, error) {
	return m.codec.Decode(raw, true)
}

func (m *Manager) AccessAlive(c *Claims) bool  { return c.AccessAliveAt(m.now()) }
func (m *Manager) RefreshAlive(c *Claims) bool { return c.RefreshAliveAt(m.now()) }

// Refresh runs the renewal state machine:
//
//	access alive                  -> no-op, claims returned unchanged
//	access dead, refresh alive,
//	policy allows                 -> new exp/rtexp from current TTL policy,
//	                                 re-encoded token returned
//	refresh dead or policy denies -> ErrRefreshExpired / ErrRefreshDenied
//
// The renewed-token string is empty on the no-op path; callers re-issue the
// transport cookie only when it is non-empty.
func (m *Manager) Refresh(c *Claims) (*Claims, string, error) {
	now := m.now()
	if c.AccessAliveAt(now) {
		return c, "", nil
	}
	if !c.RefreshAliveAt(now) {
		return nil, "", ErrRefreshExpired
	}
	if !m.policy.CanRefresh(c) {
		return nil, "", ErrRefreshDenied
	}

	app := c.UData.App
	renewed := &Claims{
		RefreshExpiresAt: jwt.NewNumericDate(now.Add(m.ttl.Refresh(app))),
		UData:            c.UData,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl.Access(app))),
			Issuer:    c.Issuer,
			ID:        uuid.NewString(),
		},
	}
	raw, err := m.codec.Encode(renewed, true)
	if err != nil {
		return nil, "", err
	}
	return renewed, raw, nil
}
