package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type denyRefresh struct{}

func (denyRefresh) CanRefresh(*Claims) bool { return false }

func newTestManager(t *testing.T, at time.Time) *Manager {
	t.Helper()
	m := NewManager(NewCodec([]byte("test-secret")), NewTTLPolicy())
	m.SetClock(func() time.Time { return at })
	return m
}

func TestCreateUsesTTLPolicy(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	m := newTestManager(t, t0)

	claims, raw, err := m.Create("app1", "42", map[string]any{"roles": []string{"admin"}})
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	// defaults: 5 minutes access, 8 hours refresh
	require.True(t, claims.ExpiresAt.Time.Equal(t0.Add(300000*time.Millisecond)))
	require.True(t, claims.RefreshExpiresAt.Time.Equal(t0.Add(28800000*time.Millisecond)))
	require.Equal(t, "app1", claims.Issuer)
	require.Equal(t, "app1", claims.UData.App)
	require.Equal(t, "42", claims.UData.Sub)
	require.NotEmpty(t, claims.ID)

	got, err := m.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, claims.UData.Sub, got.UData.Sub)
}

func TestCreatePerAppTTL(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	m := newTestManager(t, t0)
	m.TTL().SetAccess("app2", time.Minute)
	m.TTL().SetRefresh("app2", time.Hour)

	claims, _, err := m.Create("app2", "7", nil)
	require.NoError(t, err)
	require.True(t, claims.ExpiresAt.Time.Equal(t0.Add(time.Minute)))
	require.True(t, claims.RefreshExpiresAt.Time.Equal(t0.Add(time.Hour)))
}

func TestLiveness(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	m := newTestManager(t, t0)

	claims, _, err := m.Create("app1", "42", nil)
	require.NoError(t, err)
	require.True(t, m.AccessAlive(claims))
	require.True(t, m.RefreshAlive(claims))

	m.SetClock(func() time.Time { return t0.Add(6 * time.Minute) })
	require.False(t, m.AccessAlive(claims))
	require.True(t, m.RefreshAlive(claims))

	m.SetClock(func() time.Time { return t0.Add(9 * time.Hour) })
	require.False(t, m.AccessAlive(claims))
	require.False(t, m.RefreshAlive(claims))
}

func TestLivenessMissingTimestamps(t *testing.T) {
	m := newTestManager(t, time.Unix(1700000000, 0))
	c := &Claims{}
	require.False(t, m.AccessAlive(c))
	require.False(t, m.RefreshAlive(c))
}

func TestRefreshNoOpWhileLive(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	m := newTestManager(t, t0)

	claims, _, err := m.Create("app1", "42", nil)
	require.NoError(t, err)

	same, raw, err := m.Refresh(claims)
	require.NoError(t, err)
	require.Empty(t, raw)
	require.Same(t, claims, same)
}

func TestRefreshRenewsExpiredToken(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	m := newTestManager(t, t0)

	claims, _, err := m.Create("app1", "42", map[string]any{"roles": []string{"admin"}})
	require.NoError(t, err)

	t1 := t0.Add(10 * time.Minute) // access dead, refresh alive
	m.SetClock(func() time.Time { return t1 })

	renewed, raw, err := m.Refresh(claims)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	// renewed windows strictly exceed the originals
	require.True(t, renewed.ExpiresAt.Time.After(claims.ExpiresAt.Time))
	require.True(t, renewed.RefreshExpiresAt.Time.After(claims.RefreshExpiresAt.Time))
	require.True(t, renewed.ExpiresAt.Time.Equal(t1.Add(5*time.Minute)))
	require.True(t, renewed.RefreshExpiresAt.Time.Equal(t1.Add(8*time.Hour)))

	// identity carries over, token id does not
	require.Equal(t, claims.UData, renewed.UData)
	require.Equal(t, claims.Issuer, renewed.Issuer)
	require.NotEqual(t, claims.ID, renewed.ID)
}

func TestRefreshPicksUpCurrentTTLPolicy(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	m := newTestManager(t, t0)

	claims, _, err := m.Create("app1", "42", nil)
	require.NoError(t, err)

	// policy changed between issuance and renewal
	m.TTL().SetAccess("app1", time.Minute)
	m.SetClock(func() time.Time { return t0.Add(10 * time.Minute) })

	renewed, _, err := m.Refresh(claims)
	require.NoError(t, err)
	require.True(t, renewed.ExpiresAt.Time.Equal(t0.Add(10*time.Minute).Add(time.Minute)))
}

func TestRefreshTerminalWhenWindowPassed(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	m := newTestManager(t, t0)

	claims, _, err := m.Create("app1", "42", nil)
	require.NoError(t, err)

	m.SetClock(func() time.Time { return t0.Add(9 * time.Hour) })

	_, _, err = m.Refresh(claims)
	require.ErrorIs(t, err, ErrRefreshExpired)

	// a dead token stays dead, no matter how often it is retried
	_, _, err = m.Refresh(claims)
	require.ErrorIs(t, err, ErrRefreshExpired)
}

func TestRefreshDeniedByPolicy(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	m := newTestManager(t, t0)
	m.SetRefreshPolicy(denyRefresh{})

	claims, _, err := m.Create("app1", "42", nil)
	require.NoError(t, err)

	m.SetClock(func() time.Time { return t0.Add(10 * time.Minute) })

	_, _, err = m.Refresh(claims)
	require.ErrorIs(t, err, ErrRefreshDenied)
}
