// Package router registers every HTTP route.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SidS12345/Family-Connections/internal/handler"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/middleware"
)

// Router holds the handlers the route groups dispatch to.
type Router struct {
	handlers *handler.Handlers
}

func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes registers public routes on r and everything else behind JWTAuth.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	rt.RegisterAuthRoutes(r)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuth())
	rt.RegisterUserRoutes(authed)
	rt.RegisterProfileRoutes(authed)
	rt.RegisterRelationshipRoutes(authed)
	rt.RegisterMessageRoutes(authed)
}
