package api

import (
	"strconv"
	"strings"

	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/repository"
	"github.com/gestor-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRequest is the create/update payload for users.
type UserRequest struct {
	Username  string `json:"nombreUsuario"`
	FirstName string `json:"nombre" binding:"required"`
	LastNameP string `json:"apellidoP"`
	LastNameM string `json:"apellidoM"`
	Email     string `json:"email"`
	Phone     string `json:"telefono"`
	Password  string `json:"password"`
	RoleID    *uint  `json:"idRol"`
	Status    string `json:"estatus"`
}

// UserStatusRequest toggles a user status.
type UserStatusRequest struct {
	Status string `json:"estatus" binding:"required"`
}

// ListUsers returns the user listing. Superadmin accounts never appear.
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	roleID, _ := strconv.ParseUint(c.Query("id_rol"), 10, 32)

	users, total, err := h.UserService.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("buscar")),
		Status:   strings.TrimSpace(c.Query("estatus")),
		RoleID:   uint(roleID),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, users, buildPagination(page, pageSize, total))
}

// GetUser returns one user.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.UserService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// CreateUser registers a user.
func (h *Handler) CreateUser(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	user, err := h.UserService.Create(actorID, service.CreateUserInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastNameP: req.LastNameP,
		LastNameM: req.LastNameM,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		RoleID:    req.RoleID,
		Status:    req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateUser edits a user.
func (h *Handler) UpdateUser(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	user, err := h.UserService.Update(actorID, id, service.UpdateUserInput{
		FirstName: req.FirstName,
		LastNameP: req.LastNameP,
		LastNameM: req.LastNameM,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		RoleID:    req.RoleID,
		Status:    req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// SetUserStatus toggles a user between Activo and Inactivo.
func (h *Handler) SetUserStatus(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	user, err := h.UserService.SetStatus(actorID, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteUser removes a user.
func (h *Handler) DeleteUser(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.UserService.Delete(actorID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "user deleted", nil)
}

// ListUserPermissions returns the direct grants of a user.
func (h *Handler) ListUserPermissions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	permissions, err := h.PermissionService.ListForUser(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, permissions)
}

// parseIDParam reads the :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

// buildPagination assembles the page envelope.
func buildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
