package auth

import (
	"net/http"

	"github.com/joeydtaylor/turnstile/pkg/rules"
)

// Authorizer decides whether the caller may access a URL that matched an
// authorization rule. caller is the token's udata.data payload. The default
// grants on role intersection; install a custom one via SetAuthorizer.
type Authorizer interface {
	Authorize(r *http.Request, uri string, ruleRoles []string, caller any, rule *rules.Rule) bool
}

// RoleAuthorizer grants when any caller role appears in the rule's role list.
type RoleAuthorizer struct{}

func (RoleAuthorizer) Authorize(_ *http.Request, _ string, ruleRoles []string, caller any, _ *rules.Rule) bool {
	for _, have := range rolesOf(caller) {
		for _, want := range ruleRoles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// rolesOf normalizes the caller payload's roles into a canonical slice. A
// single string role becomes a one-element set. Post-decode payloads are
// map[string]any (JSON), so the []any branch carries the common case.
func rolesOf(caller any) []string {
	type roler interface{ AuthRoles() []string }

	switch v := caller.(type) {
	case nil:
		return nil
	case roler:
		return v.AuthRoles()
	case map[string]any:
		switch roles := v["roles"].(type) {
		case string:
			return []string{roles}
		case []string:
			return roles
		case []any:
			out := make([]string, 0, len(roles))
			for _, r := range roles {
				if s, ok := r.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	case map[string]string:
		if r, ok := v["roles"]; ok {
			return []string{r}
		}
	case map[string][]string:
		return v["roles"]
	}
	return nil
}

// isAuthorized implements the whitelist-style policy: only URLs with at least
// one authorization rule are restricted, and absence of roles or of a matching
// rule fails open. That default-allow is configured intent, not error
// suppression; do not tighten it here.
func (m *Middleware) isAuthorized(r *http.Request, uri string, caller any) bool {
	if m.authz.Len() == 0 {
		return true
	}

	custom := m.authorizer
	if custom == nil {
		if len(rolesOf(caller)) == 0 {
			return true
		}
		custom = RoleAuthorizer{}
	}

	urlMatched := false
	granted := m.authz.Match(uri, func(rl *rules.Rule) bool {
		urlMatched = true
		return custom.Authorize(r, uri, rl.Roles, caller, rl)
	})
	if granted != nil {
		return true
	}
	// Some rule covered the URL but every candidate denied the caller.
	return !urlMatched
}
