package api

import (
	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RoleRequest is the create/update payload for roles.
type RoleRequest struct {
	Name        string `json:"nombreRol" binding:"required"`
	Description string `json:"descripcion"`
}

// ListRoles returns all roles.
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.RoleService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, roles)
}

// GetRole returns one role.
func (h *Handler) GetRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	role, err := h.RoleService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, role)
}

// CreateRole registers a role.
func (h *Handler) CreateRole(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	role, err := h.RoleService.Create(actorID, service.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, role)
}

// UpdateRole edits a role.
func (h *Handler) UpdateRole(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	role, err := h.RoleService.Update(actorID, id, service.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, role)
}

// DeleteRole removes a role. Roles still held by users are refused.
func (h *Handler) DeleteRole(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.RoleService.Delete(actorID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "role deleted", nil)
}

// ListRolePermissions returns the grants of a role.
func (h *Handler) ListRolePermissions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	permissions, err := h.RoleService.Permissions(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, permissions)
}

// ListRoleUsers returns the users holding a role.
func (h *Handler) ListRoleUsers(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	users, err := h.RoleService.Users(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, users)
}
