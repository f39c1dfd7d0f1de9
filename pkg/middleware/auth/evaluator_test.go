package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joeydtaylor/turnstile/pkg/rules"
	"github.com/joeydtaylor/turnstile/pkg/token"
)

type staffCaller struct{}

func (staffCaller) AuthRoles() []string { return []string{"staff"} }

func TestRolesOf(t *testing.T) {
	tests := []struct {
		name   string
		caller any
		want   []string
	}{
		{name: "nil", caller: nil, want: nil},
		{name: "single string role", caller: map[string]any{"roles": "admin"}, want: []string{"admin"}},
		{name: "string slice", caller: map[string]any{"roles": []string{"a", "b"}}, want: []string{"a", "b"}},
		{name: "any slice post-json", caller: map[string]any{"roles": []any{"a", "b"}}, want: []string{"a", "b"}},
		{name: "any slice mixed types", caller: map[string]any{"roles": []any{"a", 7}}, want: []string{"a"}},
		{name: "string map", caller: map[string]string{"roles": "user"}, want: []string{"user"}},
		{name: "string slice map", caller: map[string][]string{"roles": {"x"}}, want: []string{"x"}},
		{name: "roler interface", caller: staffCaller{}, want: []string{"staff"}},
		{name: "no roles key", caller: map[string]any{"plan": "pro"}, want: nil},
		{name: "unsupported shape", caller: 42, want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, rolesOf(tc.caller))
		})
	}
}

func newEvalMiddleware(t *testing.T) *Middleware {
	t.Helper()
	mgr := token.NewManager(token.NewCodec([]byte("test-secret")), token.NewTTLPolicy())
	mgr.SetClock(func() time.Time { return time.Unix(1700000000, 0) })
	return New(mgr)
}

func TestIsAuthorizedNoRulesConfigured(t *testing.T) {
	m := newEvalMiddleware(t)
	r := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)

	require.True(t, m.isAuthorized(r, "/admin/reports", nil))
	require.True(t, m.isAuthorized(r, "/admin/reports", map[string]any{"roles": "nobody"}))
}

func TestIsAuthorizedRoleIntersection(t *testing.T) {
	m := newEvalMiddleware(t)
	require.NoError(t, m.SetAuthorizationRules([]rules.Rule{
		{Pattern: "/admin/*", Roles: []string{"admin"}},
	}))
	r := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)

	tests := []struct {
		name   string
		uri    string
		caller any
		want   bool
	}{
		{name: "disjoint roles denied", uri: "/admin/reports", caller: map[string]any{"roles": "user"}, want: false},
		{name: "intersecting roles granted", uri: "/admin/reports", caller: map[string]any{"roles": []any{"admin", "user"}}, want: true},
		{name: "unrestricted url default-allow", uri: "/profile", caller: map[string]any{"roles": "user"}, want: true},
		{name: "no roles fails open", uri: "/admin/reports", caller: nil, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, m.isAuthorized(r, tc.uri, tc.caller))
		})
	}
}

func TestIsAuthorizedFirstQualifyingRuleWins(t *testing.T) {
	m := newEvalMiddleware(t)
	require.NoError(t, m.SetAuthorizationRules([]rules.Rule{
		{Pattern: "/x/*", Roles: []string{"admin"}},
		{Pattern: "/x/y", Roles: []string{"user"}},
	}))
	r := httptest.NewRequest(http.MethodGet, "/x/y", nil)

	// denied by the first rule, granted by the second; one combined pass
	// over the set must find the qualifying one
	require.True(t, m.isAuthorized(r, "/x/y", map[string]any{"roles": "user"}))
	require.False(t, m.isAuthorized(r, "/x/y", map[string]any{"roles": "ghost"}))
}

type headerAuthorizer struct{}

func (headerAuthorizer) Authorize(r *http.Request, _ string, _ []string, _ any, rule *rules.Rule) bool {
	return r.Header.Get("X-Team") == rule.Data
}

func TestIsAuthorizedCustomAuthorizer(t *testing.T) {
	m := newEvalMiddleware(t)
	require.NoError(t, m.SetAuthorizationRules([]rules.Rule{
		{Pattern: "/internal/*", Data: "platform"},
	}))
	m.SetAuthorizer(headerAuthorizer{})

	r := httptest.NewRequest(http.MethodGet, "/internal/tools", nil)
	// custom authorizer runs even for callers without roles
	require.False(t, m.isAuthorized(r, "/internal/tools", nil))

	r.Header.Set("X-Team", "platform")
	require.True(t, m.isAuthorized(r, "/internal/tools", nil))
}
