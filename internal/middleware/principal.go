package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jekabolt/grbpwr-waitlist/internal/auth/jwt"
	"github.com/jekabolt/grbpwr-waitlist/internal/waitlist"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// Principal resolves the acting principal from the bearer token and stores it in the
// request context. Requests without a valid token pass through with no principal.
func Principal(jwtAuth *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := jwtauth.TokenFromHeader(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := jwt.VerifyToken(jwtAuth, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithPrincipal(r.Context(), &waitlist.Principal{
				Id:   claims.Subject,
				Role: claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *waitlist.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetPrincipal retrieves the principal from context, nil if the request is anonymous
func GetPrincipal(ctx context.Context) *waitlist.Principal {
	if p, ok := ctx.Value(PrincipalKey).(*waitlist.Principal); ok {
		return p
	}
	return nil
}
