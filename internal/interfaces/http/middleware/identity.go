package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	vo "maintdesk/internal/domain/ticket/valueobjects"
	"maintdesk/internal/shared/errors"
	"maintdesk/internal/shared/utils"
)

// Identity reads the acting role and user from the X-Role and X-User-ID
// headers and stores them in the request context. Authentication itself is
// handled upstream; this service trusts the headers it is given.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := vo.NewRole(c.GetHeader("X-Role"))
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewBadRequestError("missing or invalid X-Role header"))
			c.Abort()
			return
		}

		userID, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 32)
		if err != nil || userID == 0 {
			utils.ErrorResponseWithError(c, errors.NewBadRequestError("missing or invalid X-User-ID header"))
			c.Abort()
			return
		}

		c.Set("role", role)
		c.Set("user_id", uint(userID))
		c.Next()
	}
}

// RoleFromContext returns the acting role stored by Identity.
func RoleFromContext(c *gin.Context) vo.Role {
	role, _ := c.Get("role")
	r, _ := role.(vo.Role)
	return r
}

// UserIDFromContext returns the acting user ID stored by Identity.
func UserIDFromContext(c *gin.Context) uint {
	userID, _ := c.Get("user_id")
	id, _ := userID.(uint)
	return id
}
