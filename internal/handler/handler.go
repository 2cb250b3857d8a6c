package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/example-crud-service/internal/dispatch"
	"github.com/maxviazov/example-crud-service/internal/repository"
)

// APIV1Prefix is the single source of truth for API versioning.
const APIV1Prefix = "/api/v1"

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, d *dispatch.Dispatcher, pinger repository.Pinger) {
	h := NewHealthHandler(pinger)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewExampleHandler(d).Register(api)
	}
}
