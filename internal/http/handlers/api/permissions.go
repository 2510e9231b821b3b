package api

import (
	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GrantRequest grants or revokes one permission edge.
type GrantRequest struct {
	TargetType   string `json:"tipoObjetivo" binding:"required"` // usuario | rol
	TargetID     uint   `json:"idObjetivo" binding:"required"`
	PermissionID uint   `json:"idPermiso" binding:"required"`
	Grant        *bool  `json:"conceder" binding:"required"`
}

// ListPermissions returns the permission catalog.
func (h *Handler) ListPermissions(c *gin.Context) {
	permissions, err := h.PermissionService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, permissions)
}

// ApplyGrant grants or revokes a permission for a user or role. Repeated
// applications are idempotent.
func (h *Handler) ApplyGrant(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	err := h.PermissionService.Apply(actorID, service.GrantInput{
		TargetType:   req.TargetType,
		TargetID:     req.TargetID,
		PermissionID: req.PermissionID,
		Grant:        *req.Grant,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "grant applied", nil)
}
