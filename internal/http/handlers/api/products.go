package api

import (
	"strconv"
	"strings"

	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/repository"
	"github.com/gestor-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest is the create/update payload for products.
type ProductRequest struct {
	Name         string          `json:"nombre" binding:"required"`
	Brand        string          `json:"marca"`
	Model        string          `json:"modelo"`
	SerialNumber string          `json:"noSerie"`
	Description  string          `json:"descripcion"`
	CategoryID   *uint           `json:"idCategoria"`
	SupplierID   *uint           `json:"idProveedor"`
	Price        decimal.Decimal `json:"precio"`
	Stock        int             `json:"existencias"`
}

// ListProducts returns the product listing.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	categoryID, _ := strconv.ParseUint(c.Query("id_categoria"), 10, 32)
	supplierID, _ := strconv.ParseUint(c.Query("id_proveedor"), 10, 32)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		SupplierID:   uint(supplierID),
		Search:       strings.TrimSpace(c.Query("buscar")),
		WithCategory: true,
		WithSupplier: true,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct returns one product with category and supplier.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct registers a product.
func (h *Handler) CreateProduct(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	product, err := h.ProductService.Create(actorID, productInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct edits a product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	product, err := h.ProductService.Update(actorID, id, productInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(actorID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "product deleted", nil)
}

func productInput(req ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:         req.Name,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		SupplierID:   req.SupplierID,
		Price:        req.Price,
		Stock:        req.Stock,
	}
}
