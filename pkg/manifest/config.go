package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// Config is the top-level auth manifest. Everything here is setup-time
// configuration; the middleware treats it as frozen once serving begins.
type Config struct {
	CookieName           string   `toml:"cookie_name"`
	CookieOverrideHeader string   `toml:"cookie_override_header"`
	SecureCookies        bool     `toml:"secure_cookies"`
	NotAuthenticated     []string `toml:"not_authenticated"`

	// TTL is keyed by appId; the reserved "default" key backs the fallback.
	// Durations are milliseconds on the wire.
	TTL map[string]TTL `toml:"ttl"`

	// Authorize is ordered: the first matching rule decides.
	Authorize []AuthRule `toml:"authorize"`
}

type TTL struct {
	AccessMS  int64 `toml:"access_ms"`
	RefreshMS int64 `toml:"refresh_ms"`
}

func (t TTL) Access() time.Duration  { return time.Duration(t.AccessMS) * time.Millisecond }
func (t TTL) Refresh() time.Duration { return time.Duration(t.RefreshMS) * time.Millisecond }

type AuthRule struct {
	URL   string   `toml:"url"`
	Roles []string `toml:"roles"`
}

// Validate normalizes patterns and checks fields that are independent of the
// hosting server.
func (c *Config) Validate() error {
	c.CookieName = strings.TrimSpace(c.CookieName)
	c.CookieOverrideHeader = strings.TrimSpace(c.CookieOverrideHeader)

	for i := range c.NotAuthenticated {
		p, err := normalizePattern(c.NotAuthenticated[i])
		if err != nil {
			return fmt.Errorf("not_authenticated %d: %w", i, err)
		}
		c.NotAuthenticated[i] = p
	}

	for i := range c.Authorize {
		r := &c.Authorize[i]
		p, err := normalizePattern(r.URL)
		if err != nil {
			return fmt.Errorf("authorize %d: %w", i, err)
		}
		r.URL = p
		for j, role := range r.Roles {
			r.Roles[j] = strings.TrimSpace(role)
			if r.Roles[j] == "" {
				return fmt.Errorf("authorize %d (%s): empty role", i, r.URL)
			}
		}
	}

	for app, ttl := range c.TTL {
		if strings.TrimSpace(app) == "" {
			return errors.New("ttl: empty app key")
		}
		if ttl.AccessMS < 0 || ttl.RefreshMS < 0 {
			return fmt.Errorf("ttl %q: durations must be >= 0", app)
		}
	}
	return nil
}

func normalizePattern(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("url pattern is required")
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	// path.Clean would eat the trailing wildcard slash, so guard it.
	if p == "/*" {
		return p, nil
	}
	if strings.HasSuffix(p, "/*") {
		return path.Clean(strings.TrimSuffix(p, "/*")) + "/*", nil
	}
	if p != "/" {
		p = path.Clean(p)
	}
	return p, nil
}
