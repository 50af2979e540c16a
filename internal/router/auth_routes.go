package router

import (
	"github.com/gin-gonic/gin"
)

// registerAuthRoutes mounts the public auth routes.
func (rt *Router) registerAuthRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", rt.handlers.Auth.Register)
		authGroup.POST("/login", rt.handlers.Auth.Login)
	}
}
