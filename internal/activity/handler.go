package activity

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

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

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequirePermission(shared.PermViewReports, shared.ShapeRead))
		r.Get("/", h.list)
		r.Get("/export", h.export)
	})
}

func (h *Handler) listRequest(r *http.Request) ListLogsRequest {
	req := ListLogsRequest{
		Entity:  r.URL.Query().Get("entity"),
		Action:  r.URL.Query().Get("action"),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", 50),
	}
	if v := r.URL.Query().Get("actor_id"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.ActorID = &parsed
		}
	}
	if v := r.URL.Query().Get("from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			req.From = &parsed
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			req.To = &parsed
		}
	}
	return req
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	req := h.listRequest(r)
	logs, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list activity", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"activity":   logs,
		"pagination": shared.NewPagination(req.Page, req.PerPage, total),
	})
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	req := h.listRequest(r)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="activity.csv"`)
	if err := h.service.ExportCSV(r.Context(), req, w); err != nil {
		h.logger.Error("export activity", slog.Any("error", err))
	}
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
