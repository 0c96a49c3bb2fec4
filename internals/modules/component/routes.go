package component

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListComponents)
	r.Get("/{componentID}", h.GetComponent)

	return r
}

func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateComponent)
	r.Patch("/{componentID}/status", h.ChangeStatus)

	return r
}
