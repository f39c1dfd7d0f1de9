// pkg/transport/httpx/cookie.go
package httpx

import (
	"net/http"
	"time"
)

// InvalidCookieValue is written on logout. Clients returning it fail decode,
// which is the point: client-side cookie deletion is not a security boundary.
const InvalidCookieValue = "undefined"

// Cookie lifetime is intentionally decoupled from the token's embedded
// expiry; trust is re-derived from signature + exp on every request.
func farFuture() time.Time { return time.Now().AddDate(10, 0, 0) }

// SetTokenCookie places the token where the client will return it:
// HttpOnly, path=/, optional Secure, far-future Expires.
func SetTokenCookie(w http.ResponseWriter, name, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  farFuture(),
		HttpOnly: true,
		Secure:   secure,
	})
}

// ClearTokenCookie overwrites the token cookie with the logout sentinel.
func ClearTokenCookie(w http.ResponseWriter, name string, secure bool) {
	SetTokenCookie(w, name, InvalidCookieValue, secure)
}

// TokenCookie reads the named cookie's value; ok is false when absent or empty.
func TokenCookie(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c == nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
