package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SidS12345/Family-Connections/pkg/constants"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
	"github.com/SidS12345/Family-Connections/pkg/util/jwt"
)

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": errorx.CodeUnauthorized,
		"msg":  msg,
		"data": nil,
	})
}

// JWTAuth verifies the Bearer access token and stores the user id in the context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. read the header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "please log in")
			return
		}

		// 2. split "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "authorization header must be a Bearer token")
			return
		}

		// 3. verify
		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "token is expired or invalid, please log in again")
			return
		}

		// 4. refresh tokens cannot call the API
		if claims.Subject != jwt.SubjectAccessToken {
			abortUnauthorized(c, "use an access token for this endpoint")
			return
		}

		c.Set(constants.CTX_USER_ID, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the id stored by JWTAuth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.CTX_USER_ID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
