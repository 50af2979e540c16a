// Package https_server builds the gin engine: middlewares first, then routes.
package https_server

import (
	"net/http"
	"time"

	"caller_id_server/internal/config"
	"caller_id_server/internal/handler"
	"caller_id_server/internal/infrastructure/logger"
	"caller_id_server/internal/infrastructure/middleware"
	"caller_id_server/internal/router"
	"caller_id_server/pkg/constants"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init returns the configured engine.
// Order: request id, logging, recovery, secure headers, CORS, deadline, routes.
func Init(handlers *handler.Handlers, conf *config.Config) *gin.Engine {
	if conf.MainConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))
	engine.Use(middleware.SecureHeaders(&conf.SecurityConfig, conf.MainConfig.Mode != "release"))

	corsConfig := cors.DefaultConfig()
	if len(conf.CorsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = conf.CorsConfig.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", constants.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{constants.HeaderRequestID, constants.HeaderSearchTier}
	engine.Use(cors.New(corsConfig))

	engine.Use(middleware.RequestTimeout(time.Duration(conf.MainConfig.RequestTimeout) * time.Second))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"statusCode": http.StatusNotFound,
			"message":    "Route not found",
			"success":    false,
			"errors":     []string{},
			"data":       nil,
		})
	})

	router.NewRouter(handlers).RegisterRoutes(engine)
	return engine
}
