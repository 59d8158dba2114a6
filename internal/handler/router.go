package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Raymond9734/invoices-dashboard/internal/auth"
	"github.com/Raymond9734/invoices-dashboard/internal/metrics"
)

// Routes bundles everything the router dispatches to
type Routes struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Dashboard    *DashboardHandler
	Invoices     *InvoiceHandler
	Sessions     *auth.SessionManager
	LoginLimiter *RateLimiter
	Logger       *slog.Logger

	// AllowedOrigins lists browser origins that may call the API cross-site
	AllowedOrigins []string
}

// NewRouter builds the API router
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(rt.Logger))
	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware(rt.Logger))
	r.Use(MetricsMiddleware)
	r.Use(CORSMiddleware(rt.AllowedOrigins))

	r.Get("/health", rt.Health.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.RedirectIfAuthenticated(rt.Sessions))
		if rt.LoginLimiter != nil {
			r.Use(rt.LoginLimiter.Handler)
		}
		r.Post(auth.LoginPath, rt.Auth.Login)
	})
	r.Post("/logout", rt.Auth.Logout)

	r.Route(auth.DashboardPath, func(r chi.Router) {
		r.Use(auth.RequireSession(rt.Sessions, sessionRejected(rt.Logger), rt.Logger))

		r.Get("/", rt.Dashboard.Overview)
		r.Get("/customers", rt.Dashboard.ListCustomers)

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", rt.Dashboard.ListInvoices)
			r.Post("/", rt.Invoices.CreateInvoice)
			r.Get("/create", rt.Dashboard.CreateForm)
			r.Get("/{id}", rt.Dashboard.GetInvoice)
			r.Get("/{id}/edit", rt.Dashboard.EditForm)
			r.Post("/{id}", rt.Invoices.UpdateInvoice)
			r.Post("/{id}/delete", rt.Invoices.DeleteInvoice)
			r.Delete("/{id}", rt.Invoices.DeleteInvoice)
		})
	})

	return r
}

// sessionRejected answers JSON clients with 401 and sends browsers to the login page
func sessionRejected(logger *slog.Logger) auth.RejectFunc {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			handleError(w, err, logger)
			return
		}
		auth.RedirectToLogin(w, r, err)
	}
}
