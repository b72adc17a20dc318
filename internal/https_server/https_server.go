// Package https_server builds the gin engine with its middleware and routes.
package https_server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SidS12345/Family-Connections/internal/config"
	"github.com/SidS12345/Family-Connections/internal/handler"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/logger"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/middleware"
	"github.com/SidS12345/Family-Connections/internal/router"
)

// Init returns an engine with logging, recovery, metrics and CORS installed
// and every route registered. The HTTPS redirect runs when TLSRedirect is set.
func Init(conf *config.MainConfig, handlers *handler.Handlers) *gin.Engine {
	if conf.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// gin.New, not gin.Default, so the middleware set is explicit
	engine := gin.New()
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))
	engine.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	if conf.TLSRedirect {
		engine.Use(middleware.TlsHandler(conf.Host, conf.Port, conf.Mode != "release"))
	}

	router.NewRouter(handlers).RegisterRoutes(engine)
	return engine
}
