package middleware

import (
	"net/http"
	"strings"

	"backstage/internal/auth"
	"backstage/internal/logging"
)

// TokenVerifier checks admin session tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// RequireAdmin rejects requests without a valid "Authorization: Bearer"
// admin token. The admin id is stored in the request context.
func RequireAdmin(verifier TokenVerifier, onError func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.VerifyToken(BearerToken(r))
			if err != nil {
				onError(w, r, err)
				return
			}

			ctx := logging.ContextWithAdminID(r.Context(), claims.AdminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
