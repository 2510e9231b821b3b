package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/repository"
	"github.com/gestor-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// QuotationItemRequest is one quotation line. UnitPrice zero with a
// product reference pulls the price from the product.
type QuotationItemRequest struct {
	ProductID    *uint           `json:"idProducto"`
	Name         string          `json:"nombre"`
	Brand        string          `json:"marca"`
	Model        string          `json:"modelo"`
	SerialNumber string          `json:"noSerie"`
	UnitPrice    decimal.Decimal `json:"precioUnitario"`
	Quantity     int             `json:"cantidad"`
}

// QuotationRequest is the create/update payload. Amount fields are
// ignored; totals are always recomputed server side.
type QuotationRequest struct {
	Date        *time.Time             `json:"fecha"`
	ClientID    uint                   `json:"idCliente" binding:"required"`
	ContactID   *uint                  `json:"idContacto"`
	Status      string                 `json:"estatus"`
	DiscountPct decimal.Decimal        `json:"descuentoPorcentaje"`
	TaxEnabled  bool                   `json:"ivaHabilitado"`
	TaxPct      decimal.Decimal        `json:"ivaPorcentaje"`
	Items       []QuotationItemRequest `json:"items" binding:"required"`
}

// ListQuotations returns the quotation listing.
func (h *Handler) ListQuotations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	clientID, _ := strconv.ParseUint(c.Query("id_cliente"), 10, 32)

	filter := repository.QuotationListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("buscar")),
		Status:   strings.TrimSpace(c.Query("estatus")),
		ClientID: uint(clientID),
		OrderBy:  strings.TrimSpace(c.Query("orden")),
	}
	if from, err := time.Parse("2006-01-02", c.Query("fecha_desde")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("fecha_hasta")); err == nil {
		filter.DateTo = &to
	}

	quotations, total, err := h.QuotationService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, quotations, buildPagination(page, pageSize, total))
}

// GetQuotation returns one quotation with client and items.
func (h *Handler) GetQuotation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	quotation, err := h.QuotationService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, quotation)
}

// CreateQuotation registers a quotation with a generated folio.
func (h *Handler) CreateQuotation(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	var req QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	quotation, err := h.QuotationService.Create(actorID, quotationInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, quotation)
}

// UpdateQuotation replaces the quotation head and items.
func (h *Handler) UpdateQuotation(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	quotation, err := h.QuotationService.Update(actorID, id, quotationInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, quotation)
}

// DeleteQuotation removes a quotation and its items.
func (h *Handler) DeleteQuotation(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.QuotationService.Delete(actorID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "quotation deleted", nil)
}

func quotationInput(req QuotationRequest) service.QuotationInput {
	items := make([]service.QuotationItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.QuotationItemInput{
			ProductID:    item.ProductID,
			Name:         item.Name,
			Brand:        item.Brand,
			Model:        item.Model,
			SerialNumber: item.SerialNumber,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
		})
	}
	return service.QuotationInput{
		Date:        req.Date,
		ClientID:    req.ClientID,
		ContactID:   req.ContactID,
		Status:      req.Status,
		DiscountPct: req.DiscountPct,
		TaxEnabled:  req.TaxEnabled,
		TaxPct:      req.TaxPct,
		Items:       items,
	}
}
