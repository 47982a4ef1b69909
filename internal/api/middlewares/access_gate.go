package middlewares

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"meubolso/pkg/utils"
)

// Browser navigations that require a session. An unauthenticated hit is
// redirected to the login page with the original path in "from".
var protectedPagePrefixes = []string{
	"/dashboard",
}

// API routes that require a session. An unauthenticated hit gets a 401.
var protectedAPIPrefixes = []string{
	"/summary",
	"/transactions",
	"/wallets",
	"/categorias",
}

const SessionCookie = "token"

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AccessGate is the single choke point for request authorization. Every
// token on a protected route is verified (signature and expiry); handlers
// behind the gate can trust the userId in the request context.
func AccessGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		isPage := hasPrefix(path, protectedPagePrefixes)
		isAPI := hasPrefix(path, protectedAPIPrefixes)

		if !isPage && !isAPI {
			next.ServeHTTP(w, r)
			return
		}

		reject := func() {
			if isAPI {
				utils.WriteError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login?from="+url.QueryEscape(path), http.StatusFound)
		}

		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			reject()
			return
		}

		userID, err := utils.VerifyToken(cookie.Value)
		if err != nil {
			reject()
			return
		}

		ctx := context.WithValue(r.Context(), utils.ContextKey("userId"), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID pulls the authenticated user id the gate attached to the request.
func UserID(r *http.Request) (int, bool) {
	id, ok := r.Context().Value(utils.ContextKey("userId")).(int)
	return id, ok
}

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
