package uptime

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/timeline", h.GetAggregatedTimeline)
	r.Get("/components/{componentID}/uptime", h.GetComponentUptime)
	r.Get("/components/{componentID}/timeline", h.GetDailyTimeline)

	return r
}

func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/snapshots", h.RunDailySnapshot)
	r.Delete("/cache", h.InvalidateCache)

	return r
}

/*
- GET: /status/timeline?days={n}                      -> cross-component daily rollup
- GET: /status/components/{componentID}/uptime        -> uptime percentage over a window
- GET: /status/components/{componentID}/timeline      -> per-day status buckets
- POST: /admin/status/snapshots                       -> record today's snapshots (idempotent)
- DELETE: /admin/status/cache?scope={}&days={}        -> drop one cached payload
*/
