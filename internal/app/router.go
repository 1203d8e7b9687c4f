package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/innoventory/innoventory/internal/accounts"
	"github.com/innoventory/innoventory/internal/activity"
	"github.com/innoventory/innoventory/internal/analytics"
	"github.com/innoventory/innoventory/internal/auth"
	"github.com/innoventory/innoventory/internal/customers"
	"github.com/innoventory/innoventory/internal/invoices"
	"github.com/innoventory/innoventory/internal/observability"
	"github.com/innoventory/innoventory/internal/orders"
	"github.com/innoventory/innoventory/internal/vendors"
	"github.com/innoventory/innoventory/internal/worktypes"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthMiddleware   auth.Middleware
	AuthHandler      *auth.Handler
	AccountsHandler  *accounts.Handler
	CustomersHandler *customers.Handler
	VendorsHandler   *vendors.Handler
	WorkTypesHandler *worktypes.Handler
	OrdersHandler    *orders.Handler
	InvoicesHandler  *invoices.Handler
	ActivityHandler  *activity.Handler
	AnalyticsHandler *analytics.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with Innoventory defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		// Everything below requires a verified bearer token; per-route
		// permission gates live inside each handler.
		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequireAuth)
			r.Route("/users", params.AccountsHandler.MountRoutes)
			r.Route("/customers", params.CustomersHandler.MountRoutes)
			r.Route("/vendors", params.VendorsHandler.MountRoutes)
			r.Route("/worktypes", params.WorkTypesHandler.MountRoutes)
			r.Route("/orders", params.OrdersHandler.MountRoutes)
			r.Route("/invoices", params.InvoicesHandler.MountRoutes)
			r.Route("/activity", params.ActivityHandler.MountRoutes)
			r.Route("/dashboard", params.AnalyticsHandler.MountDashboard)
			r.Route("/analytics", params.AnalyticsHandler.MountAnalytics)
		})
	})

	return r
}
