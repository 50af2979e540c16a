package router

import (
	"caller_id_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

func (rt *Router) registerSearchRoutes(v1 *gin.RouterGroup) {
	searchGroup := v1.Group("/search")
	searchGroup.Use(middleware.JWTAuth())
	{
		searchGroup.GET("/name", rt.handlers.Search.ByName)
		searchGroup.GET("/phone", rt.handlers.Search.ByPhone)
		searchGroup.GET("/person/details", rt.handlers.Search.PersonDetails)
	}
}
