package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SidS12345/Family-Connections/internal/dto/request"
	"github.com/SidS12345/Family-Connections/internal/service"
)

// AuthHandler serves token refresh.
type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// RefreshToken exchanges a refresh token for a new pair.
// POST /auth/refresh
//
// Only the most recently issued refresh token of a user is accepted, so a
// login elsewhere revokes older sessions.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
