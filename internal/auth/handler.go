package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/innoventory/innoventory/internal/platform/httpx"
	"github.com/innoventory/innoventory/internal/shared"
)

// LoginCounter tallies login outcomes, satisfied by observability.Metrics.
type LoginCounter interface {
	CountLogin(outcome string)
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	signer    Signer
	mw        Middleware
	validator *validator.Validate
	logins    LoginCounter
}

// WithMetrics attaches a login counter. Optional.
func (h *Handler) WithMetrics(c LoginCounter) *Handler {
	h.logins = c
	return h
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, signer Signer, mw Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		signer:    signer,
		mw:        mw,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequireAuth)
		r.Get("/me", h.handleMe)
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type accountSummary struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	ExpiresIn int64          `json:"expires_in"`
	Account   accountSummary `json:"account"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request", "email and password are required")
		return
	}

	identity, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.countLogin("denied")
		httpx.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if identity.Demo {
		h.countLogin("fallback")
	} else {
		h.countLogin("ok")
	}

	token, err := h.signer.Issue(identity.AccountID, identity.Email, identity.Role, identity.Permissions)
	if err != nil {
		h.logger.Error("sign token", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int64(h.signer.TTL().Seconds()),
		Account: accountSummary{
			ID:          identity.AccountID,
			Email:       identity.Email,
			Name:        identity.Name,
			Role:        identity.Role,
			Permissions: identity.Permissions,
		},
	})
}

func (h *Handler) countLogin(outcome string) {
	if h.logins == nil {
		return
	}
	h.logins.CountLogin(outcome)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := shared.ClaimsFromContext(r.Context())
	if claims == nil {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	httpx.JSON(w, http.StatusOK, accountSummary{
		ID:          claims.AccountID,
		Email:       claims.Email,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	})
}
