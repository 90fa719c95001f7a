package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type identityKey struct{}

// WithIdentity stores the caller identity in ctx.
func WithIdentity(ctx context.Context, identity user.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the caller identity set by AuthRequired. The zero
// Identity is returned for anonymous requests.
func IdentityFrom(ctx context.Context) user.Identity {
	identity, _ := ctx.Value(identityKey{}).(user.Identity)
	return identity
}

// AuthRequired rejects requests without a valid access token and attaches
// the identity from its claims. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		identity, err := jwt.IdentityFromClaims(claims)
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	}
	return http.HandlerFunc(hfn)
}
