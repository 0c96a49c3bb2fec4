package incident

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/metrics/impact", h.GetCountsByImpact)
	r.Get("/metrics/mttr", h.GetMTTR)

	return r
}

func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.OpenIncident)
	r.Patch("/{incidentID}/resolve", h.ResolveIncident)

	return r
}
