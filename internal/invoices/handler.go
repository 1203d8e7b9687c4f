package invoices

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/innoventory/innoventory/internal/auth"
	"github.com/innoventory/innoventory/internal/platform/httpx"
	"github.com/innoventory/innoventory/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	mw        auth.Middleware
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, mw auth.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		mw:        mw,
		validator: validator.New(),
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequirePermission(shared.PermManagePayments, shared.ShapeRead))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequirePermission(shared.PermManagePayments, shared.ShapeWrite))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Post("/{id}/issue", h.issue)
		r.Post("/{id}/mark-paid", h.markPaid)
		r.Post("/{id}/void", h.void)
	})
	// The export is a reporting surface, gated separately.
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequirePermission(shared.PermViewReports, shared.ShapeRead))
		r.Get("/export", h.export)
	})
}

func (h *Handler) listRequest(r *http.Request) ListInvoicesRequest {
	req := ListInvoicesRequest{
		Status:  Status(r.URL.Query().Get("status")),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", 20),
	}
	if v := r.URL.Query().Get("order_id"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.OrderID = &parsed
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
	list, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"invoices":   list,
		"pagination": shared.NewPagination(req.Page, req.PerPage, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request", "invalid invoice id")
		return
	}
	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	inv, err := h.service.Create(r.Context(), req, shared.ClaimsFromContext(r.Context()))
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request", "invalid invoice id")
		return
	}
	var req UpdateInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	inv, err := h.service.Update(r.Context(), id, req, shared.ClaimsFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Issue)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.MarkPaid)
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Void)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64, actor *shared.Claims) (*Invoice, error)) {
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request", "invalid invoice id")
		return
	}
	inv, err := fn(r.Context(), id, shared.ClaimsFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	req := h.listRequest(r)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.csv"`)
	if err := h.service.ExportCSV(r.Context(), req, w); err != nil {
		h.logger.Error("export invoices", slog.Any("error", err))
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
