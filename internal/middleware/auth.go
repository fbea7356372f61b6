package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ladelta/bakery-service/internal/config"
	"github.com/ladelta/bakery-service/internal/service"
)

// contextKey is a type for context keys
type contextKey string

const identityKey contextKey = "identity"

// TokenFromRequest extracts the session token: a Bearer Authorization header
// takes precedence over the session cookie.
func TokenFromRequest(r *http.Request, cookieName string) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// Identity resolves the request's session token, if any, and attaches the
// verified identity to the context. It never rejects a request; handlers and
// the page guard decide what an absent identity means.
func Identity(auth *service.AuthService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r, cookieName)
			if token != "" {
				if identity := auth.VerifyToken(token); identity != nil {
					ctx := context.WithValue(r.Context(), identityKey, identity)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFrom returns the verified identity attached to the context, or nil
// for an unauthenticated request.
func IdentityFrom(ctx context.Context) *service.Identity {
	identity, _ := ctx.Value(identityKey).(*service.Identity)
	return identity
}

// PageGuard redirects unauthenticated requests away from protected pages and
// authenticated ones away from the login page. It runs after Identity.
func PageGuard(cfg config.Auth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			// Auth endpoints, static assets and file requests are never guarded.
			for _, prefix := range cfg.ExemptPrefixes {
				if strings.HasPrefix(path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}
			if strings.Contains(path, ".") {
				next.ServeHTTP(w, r)
				return
			}

			identity := IdentityFrom(r.Context())

			if identity == nil && isProtected(path, cfg.ProtectedPrefixes) {
				loginURL := cfg.LoginPath + "?redirect=" + url.QueryEscape(path)
				http.Redirect(w, r, loginURL, http.StatusFound)
				return
			}

			if identity != nil && path == cfg.LoginPath {
				http.Redirect(w, r, cfg.DashboardPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isProtected(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
