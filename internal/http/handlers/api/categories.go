package api

import (
	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest is the create/update payload for categories.
type CategoryRequest struct {
	Name        string `json:"nombre" binding:"required"`
	Description string `json:"descripcion"`
}

// ListCategories returns all categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// GetCategory returns one category.
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// CreateCategory registers a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	category, err := h.CategoryService.Create(actorID, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory edits a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	category, err := h.CategoryService.Update(actorID, id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category. Categories still referenced by
// products are refused.
func (h *Handler) DeleteCategory(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(actorID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "category deleted", nil)
}
