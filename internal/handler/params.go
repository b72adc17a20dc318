package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SidS12345/Family-Connections/internal/infrastructure/middleware"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
)

// currentUser returns the authenticated user id, writing a 401 when absent.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		HandleError(c, errorx.New(errorx.CodeUnauthorized, "please log in"))
		return 0, false
	}
	return id, true
}

// pathID parses a positive numeric path parameter, writing a 400 when malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		HandleError(c, errorx.Newf(errorx.CodeInvalidParam, "%s must be a positive integer", name))
		return 0, false
	}
	return uint(id), true
}
