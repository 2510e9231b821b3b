package shared

import (
	"github.com/gestor-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the auth middleware stores the actor id.
const ContextUserKey = "user_id"

// GetUserID reads the authenticated user id from the context, replying
// with an error when it is missing or malformed.
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "authentication required", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid user id", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid user id", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "invalid user id type", nil)
		return 0, false
	}
}
