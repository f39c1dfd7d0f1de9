// middleware/auth/middleware.go
package auth

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joeydtaylor/turnstile/pkg/rules"
	"github.com/joeydtaylor/turnstile/pkg/token"
)

const (
	// DefaultCookieName is the cookie the token rides in unless overridden.
	DefaultCookieName = "tkn"
	// DefaultCookieHeader names the request header that may override the
	// cookie name per request. Empty disables the override.
	DefaultCookieHeader = "X-Token-Cookie"
)

// Middleware is the per-request orchestrator: exemption check, token
// extraction, liveness/renewal, authorization, identity attachment.
//
// All Set* configuration belongs to process setup. Nothing here locks: the
// configuration is expected to be frozen before serving begins, and every
// request-scoped value (token, identity, matched rule) is request-local.
type Middleware struct {
	tokens *token.Manager

	cookieName    string
	cookieHeader  string
	secureCookies bool

	exempt     *rules.RuleSet // not-authenticated URLs; nil => nothing exempt
	authz      *rules.RuleSet // url -> roles; nil => no restriction
	authorizer Authorizer     // nil => role intersection

	log      *zap.Logger
	recorder Recorder
}

// New builds a Middleware around a token manager with default cookie
// settings, no exemptions, and no authorization rules.
func New(tokens *token.Manager) *Middleware {
	return &Middleware{
		tokens:       tokens,
		cookieName:   DefaultCookieName,
		cookieHeader: DefaultCookieHeader,
		log:          zap.NewNop(),
		recorder:     nopRecorder{},
	}
}

func (m *Middleware) Tokens() *token.Manager { return m.tokens }

// SetCookieName changes the default token cookie name.
func (m *Middleware) SetCookieName(name string) {
	if name != "" {
		m.cookieName = name
	}
}

// SetCookieHeader changes (or, with "", disables) the per-request
// cookie-name override header.
func (m *Middleware) SetCookieHeader(name string) { m.cookieHeader = name }

// SetSecureCookies toggles the Secure attribute on issued cookies; enable it
// on HTTPS-only deployments.
func (m *Middleware) SetSecureCookies(on bool) { m.secureCookies = on }

// SetAuthorizationRules replaces the authorization rule set wholesale from
// ordered (pattern, roles) pairs.
func (m *Middleware) SetAuthorizationRules(raw []rules.Rule) error {
	set, err := rules.Compile(raw)
	if err != nil {
		return fmt.Errorf("authorization rules: %w", err)
	}
	m.authz = set
	return nil
}

// SetNotAuthenticated replaces the exemption set with the given patterns.
func (m *Middleware) SetNotAuthenticated(patterns []string) error {
	set, err := rules.Compile(patternRules(patterns))
	if err != nil {
		return fmt.Errorf("not-authenticated rules: %w", err)
	}
	m.exempt = set
	return nil
}

// AddNotAuthenticated appends patterns to the exemption set, keeping the
// previously configured ones.
func (m *Middleware) AddNotAuthenticated(patterns []string) error {
	set, err := m.exempt.Append(patternRules(patterns))
	if err != nil {
		return fmt.Errorf("not-authenticated rules: %w", err)
	}
	m.exempt = set
	return nil
}

// ClearNotAuthenticated drops every exemption: authentication required
// everywhere again.
func (m *Middleware) ClearNotAuthenticated() { m.exempt = rules.Clear() }

// SetAuthorizer installs a custom authorize function for matched rules.
func (m *Middleware) SetAuthorizer(a Authorizer) { m.authorizer = a }

// SetRefreshPolicy forwards a custom refresh-eligibility check to the
// token manager.
func (m *Middleware) SetRefreshPolicy(p token.RefreshPolicy) { m.tokens.SetRefreshPolicy(p) }

// SetLogger installs the rejection logger (nop by default).
func (m *Middleware) SetLogger(l *zap.Logger) {
	if l != nil {
		m.log = l
	}
}

// SetRecorder installs the metrics recorder (nop by default).
func (m *Middleware) SetRecorder(rec Recorder) {
	if rec != nil {
		m.recorder = rec
	}
}

func patternRules(patterns []string) []rules.Rule {
	out := make([]rules.Rule, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, rules.Rule{Pattern: p})
	}
	return out
}
