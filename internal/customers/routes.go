package customers

import (
	"github.com/go-chi/chi/v5"

	"github.com/innoventory/innoventory/internal/shared"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequirePermission(shared.PermManageCustomers, shared.ShapeRead))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequirePermission(shared.PermManageCustomers, shared.ShapeWrite))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequirePermission(shared.PermManageCustomers, shared.ShapeDelete))
		r.Delete("/{id}", h.delete)
	})
}
