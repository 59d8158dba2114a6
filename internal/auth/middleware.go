package auth

import (
	"context"
	"log/slog"
	"net/http"
)

// Paths the session middleware redirects between
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type contextKey struct{}

// WithClaims returns a copy of ctx carrying the session claims
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFromContext returns the session claims stored by RequireSession
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// RejectFunc answers a request whose session failed verification
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// RedirectToLogin is the default RejectFunc for browser requests
func RedirectToLogin(w http.ResponseWriter, r *http.Request, err error) {
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// RequireSession hands requests without a valid session to reject, or
// redirects them to the login page when reject is nil
func RequireSession(sessions *SessionManager, reject RejectFunc, logger *slog.Logger) func(http.Handler) http.Handler {
	if reject == nil {
		reject = RedirectToLogin
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessions.FromRequest(r)
			if err != nil {
				logger.Debug("unauthenticated request",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				reject(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RedirectIfAuthenticated sends already logged-in users to the dashboard
func RedirectIfAuthenticated(sessions *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := sessions.FromRequest(r); err == nil {
				http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
