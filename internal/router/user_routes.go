package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account routes.
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", rt.handlers.User.ListUsers)

	userGroup := rg.Group("/user")
	{
		userGroup.GET("", rt.handlers.User.GetAccount)
		userGroup.POST("/profile", rt.handlers.User.UpdateProfile)
		userGroup.DELETE("", rt.handlers.User.DeleteAccount)
	}
}

// RegisterProfileRoutes registers profile and tree routes.
func (rt *Router) RegisterProfileRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile/:id", rt.handlers.Profile.GetProfile)
	rg.GET("/tree/:id", rt.handlers.Profile.GetTree)
}
