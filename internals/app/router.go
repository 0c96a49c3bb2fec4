package app

import (
	"time"

	middle "statusdeck/internals/middleware"
	"statusdeck/internals/modules/component"
	"statusdeck/internals/modules/incident"
	"statusdeck/internals/modules/uptime"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middle.Logger(c.Logger))
	r.Use(middle.Metrics(middle.NewLogRecorder(c.Logger, 500*time.Millisecond)))
	r.Use(middleware.Timeout(5 * time.Second))

	r.Route("/api/v1", func(v1 chi.Router) {
		// public status page reads
		v1.Mount("/status", uptime.Routes(c.uptimeHandler))
		v1.Mount("/components", component.Routes(c.componentHandler))
		v1.Mount("/incidents", incident.Routes(c.incidentHandler))

		// writes and operational actions require a token
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(c.authMW.Handle)
			admin.Mount("/status", uptime.AdminRoutes(c.uptimeHandler))
			admin.Mount("/components", component.AdminRoutes(c.componentHandler))
			admin.Mount("/incidents", incident.AdminRoutes(c.incidentHandler))
		})
	})

	return r
}
