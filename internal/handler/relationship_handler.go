package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SidS12345/Family-Connections/internal/dto/request"
	"github.com/SidS12345/Family-Connections/internal/service"
)

// RelationshipHandler serves the relationship state machine.
type RelationshipHandler struct {
	relSvc service.RelationshipService
}

func NewRelationshipHandler(relSvc service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relSvc: relSvc}
}

// Propose POST /relationship/propose
func (h *RelationshipHandler) Propose(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request.ProposeRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.relSvc.Propose(c.Request.Context(), userID, req.ToUserID, req.RelationshipType)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Respond POST /relationship/:id/respond
func (h *RelationshipHandler) Respond(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	relID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.RespondRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.relSvc.Respond(c.Request.Context(), relID, userID, req.Decision, req.ReverseRelationshipType)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// EditDirect POST /relationship/:id/edit
func (h *RelationshipHandler) EditDirect(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	relID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.EditRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.relSvc.EditDirect(c.Request.Context(), relID, userID, req.NewRelationshipType)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Delete DELETE /relationship/:id
func (h *RelationshipHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	relID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.relSvc.DeleteRelationship(c.Request.Context(), relID, userID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListIncoming GET /relationship/incoming
func (h *RelationshipHandler) ListIncoming(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	data, err := h.relSvc.ListIncoming(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListOutgoing GET /relationship/outgoing
func (h *RelationshipHandler) ListOutgoing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	data, err := h.relSvc.ListOutgoing(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListConnections GET /relationship/connections
func (h *RelationshipHandler) ListConnections(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	data, err := h.relSvc.ListConnections(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SuggestReverse GET /relationship/suggest?relationship_id=
func (h *RelationshipHandler) SuggestReverse(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request.SuggestReverseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.relSvc.SuggestReverse(c.Request.Context(), req.RelationshipID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ProposeEdit POST /relationship/edit-request
func (h *RelationshipHandler) ProposeEdit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request.ProposeEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.relSvc.ProposeEdit(c.Request.Context(), userID, req.RelationshipID, req.TargetUserID, req.NewRelationshipType, req.FieldToChange)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListIncomingEdits GET /relationship/edit-request/incoming
func (h *RelationshipHandler) ListIncomingEdits(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	data, err := h.relSvc.ListIncomingEdits(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ResolveEdit POST /relationship/edit-request/:id/resolve
func (h *RelationshipHandler) ResolveEdit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	editID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.ResolveEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.relSvc.ResolveEdit(c.Request.Context(), editID, userID, req.Decision)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
