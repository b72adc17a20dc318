package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes registers direct message routes.
func (rt *Router) RegisterMessageRoutes(rg *gin.RouterGroup) {
	messageGroup := rg.Group("/message")
	{
		messageGroup.POST("/send", rt.handlers.Message.Send)
		messageGroup.GET("/conversations", rt.handlers.Message.ListConversations)
		messageGroup.GET("/thread/:other", rt.handlers.Message.GetThread)
		messageGroup.GET("/unread", rt.handlers.Message.UnreadCount)
	}
}
