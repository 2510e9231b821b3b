package api

import (
	"errors"

	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinels onto API replies. Unknown
// errors are logged and reported as internal.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "resource not found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
	case errors.Is(err, service.ErrDuplicate):
		shared.RespondError(c, response.CodeConflict, "resource already exists", nil)
	case errors.Is(err, service.ErrSuperadminProtected):
		shared.RespondError(c, response.CodeForbidden, "operation not allowed", nil)
	case errors.Is(err, service.ErrRoleInUse):
		shared.RespondError(c, response.CodeConflict, "role is still assigned to users", nil)
	case errors.Is(err, service.ErrCategoryInUse):
		shared.RespondError(c, response.CodeConflict, "category is still referenced by products", nil)
	case errors.Is(err, service.ErrSupplierInUse):
		shared.RespondError(c, response.CodeConflict, "supplier is still referenced by products", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		shared.RespondError(c, response.CodeUnauthorized, "invalid credentials", nil)
	case errors.Is(err, service.ErrUserInactive):
		shared.RespondError(c, response.CodeUnauthorized, "account is inactive", nil)
	case errors.Is(err, service.ErrRateLimited):
		shared.RespondError(c, response.CodeTooManyRequests, "too many attempts", nil)
	default:
		shared.RespondError(c, response.CodeInternal, "internal error", err)
	}
}
