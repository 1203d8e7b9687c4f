package auth

import (
	"net/http"
	"strings"

	"github.com/innoventory/innoventory/internal/platform/httpx"
	"github.com/innoventory/innoventory/internal/shared"
)

// Middleware guards protected routes. Every handler independently
// re-verifies the bearer token and re-checks authorization; there is no
// per-request shared state beyond the context claims.
type Middleware struct {
	Verifier Verifier
}

// RequireAuth verifies the bearer token and stores claims in the context.
// Absent, malformed, tampered, or expired tokens all answer 401.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer, ok := bearerToken(r)
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		claims := m.Verifier.Verify(r.Context(), bearer)
		if claims == nil {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithClaims(r.Context(), claims)))
	})
}

// RequirePermission authorizes the operation via the shared capability gate.
// Failing authorization answers 403, never 401: the token was valid, the
// grant was not.
func (m Middleware) RequirePermission(perm string, shape shared.OpShape) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := shared.ClaimsFromContext(r.Context())
			if claims == nil {
				httpx.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !shared.Allowed(claims, perm, shape) {
				httpx.Error(w, http.StatusForbidden, "forbidden", "missing permission: "+perm)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
