package auth

import "errors"

// Kind tags a rejection as an authentication or authorization failure. Both
// map to the same 401 envelope at the HTTP boundary; the split exists for
// logging, metrics, and callers embedding Evaluate directly.
type Kind uint8

const (
	KindAuthentication Kind = iota + 1
	KindAuthorization
)

// Error is the tagged rejection outcome produced by the middleware. It is a
// value, not control flow: every deny path returns one explicitly.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

var (
	ErrTokenNotFound  = &Error{Kind: KindAuthentication, Reason: "token not found"}
	ErrTokenInvalid   = &Error{Kind: KindAuthentication, Reason: "invalid token"}
	ErrRefreshExpired = &Error{Kind: KindAuthentication, Reason: "refresh token expired"}
	ErrRefreshDenied  = &Error{Kind: KindAuthentication, Reason: "refresh denied"}
	ErrNotAuthorized  = &Error{Kind: KindAuthorization, Reason: "insufficient role for resource"}
)

func IsAuthentication(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAuthentication
}

func IsAuthorization(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAuthorization
}
