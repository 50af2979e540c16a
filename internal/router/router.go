// Package router mounts the handlers on the gin engine.
package router

import (
	"caller_id_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// Router owns the handlers it mounts.
type Router struct {
	handlers *handler.Handlers
}

// NewRouter wraps the handler aggregate; call RegisterRoutes to mount it.
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes mounts /health and everything under /api/v1.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", rt.handlers.Health.Check)

	v1 := r.Group("/api/v1")
	rt.registerAuthRoutes(v1)
	rt.registerSearchRoutes(v1)
	rt.registerSpamRoutes(v1)
}
