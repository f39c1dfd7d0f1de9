package token

import "time"

// DefaultApp is the reserved TTL map key used when no per-app entry exists.
const DefaultApp = "default"

const (
	DefaultAccessTTL  = 5 * time.Minute
	DefaultRefreshTTL = 8 * time.Hour
)

// TTLPolicy holds per-application expiry durations for access and refresh
// tokens. It is configured once at startup and read-only while serving;
// callers mutating it under live traffic must serialize access themselves.
type TTLPolicy struct {
	access  map[string]time.Duration
	refresh map[string]time.Duration
}

func NewTTLPolicy() *TTLPolicy {
	return &TTLPolicy{
		access:  map[string]time.Duration{DefaultApp: DefaultAccessTTL},
		refresh: map[string]time.Duration{DefaultApp: DefaultRefreshTTL},
	}
}

// SetAccess sets the access-token TTL for app, or the default when app is
// empty. Values are taken as-is; overwrites are silent.
func (p *TTLPolicy) SetAccess(app string, d time.Duration) {
	if app == "" {
		app = DefaultApp
	}
	p.access[app] = d
}

// SetRefresh is symmetric to SetAccess for refresh-token TTLs.
func (p *TTLPolicy) SetRefresh(app string, d time.Duration) {
	if app == "" {
		app = DefaultApp
	}
	p.refresh[app] = d
}

func (p *TTLPolicy) Access(app string) time.Duration {
	if d, ok := p.access[app]; ok {
		return d
	}
	return p.access[DefaultApp]
}

func (p *TTLPolicy) Refresh(app string) time.Duration {
	if d, ok := p.refresh[app]; ok {
		return d
	}
	return p.refresh[DefaultApp]
}
