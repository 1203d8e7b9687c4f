package analytics

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/innoventory/innoventory/internal/auth"
	"github.com/innoventory/innoventory/internal/platform/httpx"
	"github.com/innoventory/innoventory/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	mw      auth.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, mw auth.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, mw: mw}
}

// MountDashboard attaches the summary endpoint under /api/dashboard.
func (h *Handler) MountDashboard(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequirePermission(shared.PermViewAnalytics, shared.ShapeRead))
		r.Get("/", h.dashboard)
	})
}

// MountAnalytics attaches the detail endpoints under /api/analytics.
func (h *Handler) MountAnalytics(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequirePermission(shared.PermViewAnalytics, shared.ShapeRead))
		r.Get("/orders-by-month", h.ordersByMonth)
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("dashboard summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) ordersByMonth(w http.ResponseWriter, r *http.Request) {
	months := 12
	if v := r.URL.Query().Get("months"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			months = parsed
		}
	}
	buckets, err := h.service.OrdersByMonth(r.Context(), months)
	if err != nil {
		h.logger.Error("orders by month", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if buckets == nil {
		buckets = []MonthBucket{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"months": buckets})
}
