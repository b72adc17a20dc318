package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SidS12345/Family-Connections/internal/service"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
)

// ProfileHandler serves profiles and trees.
type ProfileHandler struct {
	profileSvc service.ProfileService
	treeSvc    service.TreeService
}

func NewProfileHandler(profileSvc service.ProfileService, treeSvc service.TreeService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc, treeSvc: treeSvc}
}

// GetProfile returns a profile filtered for the caller.
// GET /profile/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	viewerID, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.profileSvc.GetProfile(c.Request.Context(), targetID, viewerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetTree returns the relationship tree rooted at a user.
// GET /tree/:id
func (h *ProfileHandler) GetTree(c *gin.Context) {
	rootID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.treeSvc.BuildTree(c.Request.Context(), rootID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if data == nil {
		HandleError(c, errorx.New(errorx.CodeNotFound, "user not found"))
		return
	}
	HandleSuccess(c, data)
}
