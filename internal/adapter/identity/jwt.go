// Package identity adapts the external identity provider: bearer-token
// verification for requests and a session value carrying the resolved
// signed-in identity.
package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the slice of the provider's user object the storefront
// consumes: a stable uid plus the email shown on reviews.
type Identity struct {
	UID   string
	Email string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) TokenVerifier {
	return TokenVerifier{[]byte(secret)}
}

// Verify parses and validates an HS256 token issued by the identity
// provider and extracts the identity. The uid is the token subject.
func (v TokenVerifier) Verify(tokenStr string) (Identity, error) {
	const op = "TokenVerifier.Verify"

	var c claims
	tok, err := jwt.ParseWithClaims(tokenStr, &c,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", t.Header["alg"],
				)
			}
			return v.secret, nil
		},
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	if !tok.Valid || c.Subject == "" {
		return Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return Identity{UID: c.Subject, Email: c.Email}, nil
}

// BearerToken extracts the bearer token from the Authorization header,
// or returns an empty string.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
