package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/joeydtaylor/turnstile/pkg/token"
	"github.com/joeydtaylor/turnstile/pkg/transport/httpx"
)

// Middleware returns the http.Handler wrapper. Rejections are logged,
// counted, and answered with the structured 401 envelope; the chain stops
// there. Exempt URLs pass through untouched, with no identity attached.
func (m *Middleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, authenticated, err := m.Evaluate(w, r)
			if err != nil {
				m.reject(w, r, err)
				return
			}
			if !authenticated {
				m.recorder.Decision(OutcomeExempt)
				next.ServeHTTP(w, r)
				return
			}
			m.recorder.Decision(OutcomePass)
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// Evaluate runs the per-request state machine without writing a rejection,
// for callers embedding the decision in their own handler flow. A successful
// silent refresh re-issues the cookie on w as a side effect. authenticated is
// false on the exempt path, where no token is even looked at.
func (m *Middleware) Evaluate(w http.ResponseWriter, r *http.Request) (token.Identity, bool, error) {
	uri := r.URL.Path

	// Exemption only applies when a configured pattern matches; an empty
	// exemption set means authentication is required everywhere.
	if m.exempt.Match(uri, nil) != nil {
		return token.Identity{}, false, nil
	}

	name := m.cookieNameFor(r)
	raw, ok := httpx.TokenCookie(r, name)
	if !ok {
		return token.Identity{}, false, ErrTokenNotFound
	}

	claims, err := m.tokens.Decode(raw)
	if err != nil {
		// Malformed and tampered collapse into one answer upstream.
		m.log.Debug("token decode failed", zap.String("uri", uri), zap.Error(err))
		return token.Identity{}, false, ErrTokenInvalid
	}

	if !m.tokens.AccessAlive(claims) {
		renewed, fresh, err := m.tokens.Refresh(claims)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrRefreshExpired):
				m.recorder.Refresh(RefreshExpired)
				return token.Identity{}, false, ErrRefreshExpired
			case errors.Is(err, token.ErrRefreshDenied):
				m.recorder.Refresh(RefreshDenied)
				return token.Identity{}, false, ErrRefreshDenied
			default:
				return token.Identity{}, false, &Error{Kind: KindAuthentication, Reason: err.Error()}
			}
		}
		// Transparent renewal: the request proceeds, the client gets the
		// re-issued cookie with the response.
		m.recorder.Refresh(RefreshRenewed)
		httpx.SetTokenCookie(w, name, fresh, m.secureCookies)
		claims = renewed
	}

	if !m.isAuthorized(r, uri, claims.UData.Data) {
		return token.Identity{}, false, ErrNotAuthorized
	}

	return claims.UData, true, nil
}

// Issue mints a token for userID under appID and sets the transport cookie:
// the createAuthentication entry point.
func (m *Middleware) Issue(w http.ResponseWriter, r *http.Request, appID, userID string, data any) (string, error) {
	_, raw, err := m.tokens.Create(appID, userID, data)
	if err != nil {
		return "", err
	}
	httpx.SetTokenCookie(w, m.cookieNameFor(r), raw, m.secureCookies)
	m.recorder.Issued()
	return raw, nil
}

// Destroy logs the caller out by overwriting the cookie with the invalid
// sentinel. Nothing is cleared server-side; there is nothing to clear.
func (m *Middleware) Destroy(w http.ResponseWriter, r *http.Request) {
	httpx.ClearTokenCookie(w, m.cookieNameFor(r), m.secureCookies)
	m.recorder.Destroyed()
}

// ValidateAuthorization runs only the authorization step against an identity
// established by other means. On denial it writes the rejection and returns
// false.
func (m *Middleware) ValidateAuthorization(w http.ResponseWriter, r *http.Request, caller any) bool {
	if m.isAuthorized(r, r.URL.Path, caller) {
		return true
	}
	m.reject(w, r, ErrNotAuthorized)
	return false
}

func (m *Middleware) cookieNameFor(r *http.Request) string {
	if m.cookieHeader != "" {
		if n := r.Header.Get(m.cookieHeader); n != "" {
			return n
		}
	}
	return m.cookieName
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, err error) {
	outcome := OutcomeRejectAuthentication
	if IsAuthorization(err) {
		outcome = OutcomeRejectAuthorization
	}
	m.recorder.Decision(outcome)
	m.log.Warn("request rejected",
		zap.String("uri", r.URL.Path),
		zap.String("outcome", outcome),
		zap.String("reason", err.Error()),
	)
	httpx.WriteReject(w, err.Error())
}
