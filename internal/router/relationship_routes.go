package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRelationshipRoutes registers the relationship state machine.
func (rt *Router) RegisterRelationshipRoutes(rg *gin.RouterGroup) {
	relGroup := rg.Group("/relationship")
	{
		relGroup.POST("/propose", rt.handlers.Relationship.Propose)
		relGroup.POST("/:id/respond", rt.handlers.Relationship.Respond)
		relGroup.POST("/:id/edit", rt.handlers.Relationship.EditDirect)
		relGroup.DELETE("/:id", rt.handlers.Relationship.Delete)

		relGroup.GET("/incoming", rt.handlers.Relationship.ListIncoming)
		relGroup.GET("/outgoing", rt.handlers.Relationship.ListOutgoing)
		relGroup.GET("/connections", rt.handlers.Relationship.ListConnections)
		relGroup.GET("/suggest", rt.handlers.Relationship.SuggestReverse)

		// edits that need the other party's consent
		relGroup.POST("/edit-request", rt.handlers.Relationship.ProposeEdit)
		relGroup.GET("/edit-request/incoming", rt.handlers.Relationship.ListIncomingEdits)
		relGroup.POST("/edit-request/:id/resolve", rt.handlers.Relationship.ResolveEdit)
	}
}
