package httphandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/toytopia/toystore/internal/adapter/identity"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type ctxKey int

const identityCtxKey ctxKey = iota

// Authenticator gates handlers behind a verified bearer token and keeps
// the storefront session in step with the last authenticated identity.
type Authenticator struct {
	verifier identity.TokenVerifier
	session  *identity.Session
}

func NewAuthenticator(
	verifier identity.TokenVerifier, session *identity.Session,
) Authenticator {
	return Authenticator{verifier: verifier, session: session}
}

// Require rejects requests without a valid bearer token and injects the
// verified identity into the request context.
func (a Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	const op = "Authenticator.Require"

	return func(w http.ResponseWriter, r *http.Request) {
		token := identity.BearerToken(r)
		if token == "" {
			http.Error(w, "sign in required", http.StatusUnauthorized)
			return
		}

		ident, err := a.verifier.Verify(token)
		if err != nil {
			slog.Warn("rejected invalid token", "op", op, "err", err)
			http.Error(w, "sign in required", http.StatusUnauthorized)
			return
		}

		if a.session != nil {
			a.session.Set(ident.UID)
		}

		ctx := context.WithValue(r.Context(), identityCtxKey, ident)
		next(w, r.WithContext(ctx))
	}
}

// IdentityFromContext returns the identity injected by [Authenticator.Require].
func IdentityFromContext(ctx context.Context) (identity.Identity, bool) {
	ident, ok := ctx.Value(identityCtxKey).(identity.Identity)
	return ident, ok
}
