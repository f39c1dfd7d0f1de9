package auth

import (
	"errors"
	"os"
	"strings"

	"go.uber.org/fx"

	"github.com/joeydtaylor/turnstile/pkg/manifest"
	"github.com/joeydtaylor/turnstile/pkg/rules"
	"github.com/joeydtaylor/turnstile/pkg/token"
)

// ProvideAuthentication wires defaults and env config:
//
//	AUTH_TOKEN_SECRET   HMAC signing secret (required)
//	AUTH_MANIFEST       optional TOML manifest path
//	AUTH_COOKIE_NAME    cookie name override (default "tkn")
//	AUTH_SECURE_COOKIES "true" adds the Secure attribute
func ProvideAuthentication() (*Middleware, error) {
	secret := strings.TrimSpace(os.Getenv("AUTH_TOKEN_SECRET"))
	if secret == "" {
		return nil, errors.New("AUTH_TOKEN_SECRET not set")
	}

	m := New(token.NewManager(token.NewCodec([]byte(secret)), token.NewTTLPolicy()))

	if name := strings.TrimSpace(os.Getenv("AUTH_COOKIE_NAME")); name != "" {
		m.SetCookieName(name)
	}
	if os.Getenv("AUTH_SECURE_COOKIES") == "true" {
		m.SetSecureCookies(true)
	}

	if path := strings.TrimSpace(os.Getenv("AUTH_MANIFEST")); path != "" {
		cfg, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		if err := m.Configure(cfg); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Configure applies a loaded manifest: cookie settings, TTL policy, the
// exemption set, and the ordered authorization rules.
func (m *Middleware) Configure(cfg manifest.Config) error {
	if cfg.CookieName != "" {
		m.SetCookieName(cfg.CookieName)
	}
	if cfg.CookieOverrideHeader != "" {
		m.SetCookieHeader(cfg.CookieOverrideHeader)
	}
	if cfg.SecureCookies {
		m.SetSecureCookies(true)
	}

	ttl := m.tokens.TTL()
	for app, d := range cfg.TTL {
		if d.AccessMS > 0 {
			ttl.SetAccess(app, d.Access())
		}
		if d.RefreshMS > 0 {
			ttl.SetRefresh(app, d.Refresh())
		}
	}

	if len(cfg.NotAuthenticated) > 0 {
		if err := m.SetNotAuthenticated(cfg.NotAuthenticated); err != nil {
			return err
		}
	}

	if len(cfg.Authorize) > 0 {
		raw := make([]rules.Rule, 0, len(cfg.Authorize))
		for _, r := range cfg.Authorize {
			raw = append(raw, rules.Rule{Pattern: r.URL, Roles: r.Roles})
		}
		if err := m.SetAuthorizationRules(raw); err != nil {
			return err
		}
	}
	return nil
}

var Module = fx.Options(
	fx.Provide(ProvideAuthentication),
)
