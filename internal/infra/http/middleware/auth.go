package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/xavierca1/qrleads/internal/auth"
)

type claimsKey struct{}

// TokenVerifier checks a session token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

const LoginPath = "/admin/login"

// RequireAdmin lets the request through only with a valid admin-token
// cookie. API calls get a 401 JSON body; pages are redirected to the login
// form with the original path in "from".
func RequireAdmin(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := AdminFromRequest(r, tokens)
			if !ok {
				unauthorized(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

// AdminFromRequest reads and verifies the session cookie.
func AdminFromRequest(r *http.Request, tokens TokenVerifier) (*auth.Claims, bool) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := tokens.Verify(cookie.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Authentication required"})
		return
	}
	http.Redirect(w, r, LoginPath+"?from="+url.QueryEscape(r.URL.Path), http.StatusFound)
}
