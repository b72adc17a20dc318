package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the routes that need no token.
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/register", rt.handlers.User.Register)
	r.POST("/login", rt.handlers.User.Login)

	authGroup := r.Group("/auth")
	{
		// exchanges a refresh token for a new pair
		authGroup.POST("/refresh", rt.handlers.Auth.RefreshToken)
	}
}
