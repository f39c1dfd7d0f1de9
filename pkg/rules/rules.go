// rules/rules.go
package rules

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Rule is one configured URL pattern plus whatever data authorization needs.
// Pattern syntax is chi routing syntax ("/admin/*", "/users/{id}", ...).
type Rule struct {
	Pattern string
	Roles   []string
	Data    any

	mux *chi.Mux
}

// RuleSet is an ordered, immutable collection of compiled rules. Matching
// honors configured order: the first rule whose pattern matches (and whose
// predicate, when given, accepts) wins. A nil *RuleSet matches nothing.
type RuleSet struct {
	rules []*Rule
}

// Compile builds a RuleSet from raw rules. Each pattern gets its own routing
// tree so that match order stays configuration order rather than chi's trie
// order. Invalid patterns are reported as errors.
func Compile(raw []Rule) (*RuleSet, error) {
	set := &RuleSet{rules: make([]*Rule, 0, len(raw))}
	for i := range raw {
		r := raw[i]
		mux, err := compilePattern(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Pattern, err)
		}
		r.mux = mux
		set.rules = append(set.rules, &r)
	}
	return set, nil
}

// chi reports bad patterns by panicking; translate that into an error.
func compilePattern(pattern string) (mux *chi.Mux, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("invalid pattern: %v", rec)
		}
	}()
	mux = chi.NewRouter()
	mux.Handle(pattern, http.NotFoundHandler())
	return mux, nil
}

// Clear returns an empty RuleSet.
func Clear() *RuleSet { return &RuleSet{} }

// Len reports the number of compiled rules; nil-safe.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Match returns the first rule, in configured order, whose pattern matches
// uri and whose predicate (when non-nil) returns true. Returns nil when no
// rule qualifies; nil-safe on the receiver.
func (s *RuleSet) Match(uri string, pred func(*Rule) bool) *Rule {
	if s == nil {
		return nil
	}
	for _, r := range s.rules {
		rctx := chi.NewRouteContext()
		if !r.mux.Match(rctx, http.MethodGet, uri) {
			continue
		}
		if pred != nil && !pred(r) {
			continue
		}
		return r
	}
	return nil
}

// Append returns a new RuleSet holding the receiver's rules followed by the
// freshly compiled ones. The receiver is left untouched.
func (s *RuleSet) Append(raw []Rule) (*RuleSet, error) {
	fresh, err := Compile(raw)
	if err != nil {
		return nil, err
	}
	merged := &RuleSet{}
	if s != nil {
		merged.rules = append(merged.rules, s.rules...)
	}
	merged.rules = append(merged.rules, fresh.rules...)
	return merged, nil
}
