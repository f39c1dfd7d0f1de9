package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed means the string could not be parsed as a token.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenIntegrity means the token parsed but failed signature verification.
	// Callers must surface both decode failures identically to avoid an oracle.
	ErrTokenIntegrity = errors.New("token integrity check failed")
)

// Codec serializes Claims to the cookie wire form and back. secure selects
// HS256 signing; insecure mode emits an unsigned (alg:none) encoding and is
// never used for tokens this library issues.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

func (c *Codec) Encode(claims *Claims, secure bool) (string, error) {
	if secure {
		return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	}
	return jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
}

// Decode parses and verifies a token string. Expiry is deliberately NOT
// validated here: the lifecycle manager needs expired tokens intact to decide
// refresh eligibility.
func (c *Codec) Decode(raw string, secure bool) (*Claims, error) {
	method := jwt.SigningMethodHS256.Alg()
	if !secure {
		method = jwt.SigningMethodNone.Alg()
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{method}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if !secure {
			return jwt.UnsafeAllowNoneSignatureType, nil
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrTokenIntegrity
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !tok.Valid {
		return nil, ErrTokenIntegrity
	}
	return claims, nil
}
