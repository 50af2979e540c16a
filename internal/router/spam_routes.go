package router

import (
	"caller_id_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

func (rt *Router) registerSpamRoutes(v1 *gin.RouterGroup) {
	spamGroup := v1.Group("/spam")
	spamGroup.Use(middleware.JWTAuth())
	{
		spamGroup.POST("/report", rt.handlers.Spam.Report)
	}
}
