package handler

import (
	"caller_id_server/pkg/constants"
	"caller_id_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the id stored by JWTAuth. It writes a 401 and
// returns false when the route was mounted without the middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.CtxUserID)
	if !ok {
		HandleError(c, errorx.New(errorx.CodeUnauthenticated, "Access denied. No token provided"))
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		HandleError(c, errorx.New(errorx.CodeForbidden, "Invalid or expired token"))
		return 0, false
	}
	return id, true
}
