package api

import (
	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SupplierRequest is the create/update payload for suppliers.
type SupplierRequest struct {
	Name    string `json:"nombre" binding:"required"`
	RFC     string `json:"rfc"`
	Phone   string `json:"telefono"`
	Email   string `json:"email"`
	Address string `json:"direccion"`
}

// ContactRequest is the supplier contact payload.
type ContactRequest struct {
	Name     string `json:"nombre" binding:"required"`
	Phone    string `json:"telefono"`
	Email    string `json:"email"`
	Position string `json:"puesto"`
}

// ReassignRequest moves all products from one supplier to another.
type ReassignRequest struct {
	ToSupplierID uint `json:"idProveedorDestino" binding:"required"`
}

// ListSuppliers returns all suppliers.
func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.SupplierService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, suppliers)
}

// GetSupplier returns one supplier with contacts.
func (h *Handler) GetSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	supplier, err := h.SupplierService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, supplier)
}

// CreateSupplier registers a supplier.
func (h *Handler) CreateSupplier(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	supplier, err := h.SupplierService.Create(actorID, supplierInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, supplier)
}

// UpdateSupplier edits a supplier.
func (h *Handler) UpdateSupplier(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	supplier, err := h.SupplierService.Update(actorID, id, supplierInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, supplier)
}

// DeleteSupplier removes a supplier. Suppliers still referenced by
// products are refused; reassign the products first.
func (h *Handler) DeleteSupplier(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.SupplierService.Delete(actorID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "supplier deleted", nil)
}

// ReassignSupplierProducts moves every product of the supplier in the
// path to the supplier in the body.
func (h *Handler) ReassignSupplierProducts(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	fromID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	moved, err := h.SupplierService.Reassign(actorID, fromID, req.ToSupplierID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"productosMovidos": moved})
}

// ListSupplierContacts returns the contacts of a supplier.
func (h *Handler) ListSupplierContacts(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	contacts, err := h.SupplierService.ListContacts(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, contacts)
}

// CreateSupplierContact adds a contact to a supplier.
func (h *Handler) CreateSupplierContact(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	contact, err := h.SupplierService.CreateContact(actorID, id, contactInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, contact)
}

// UpdateSupplierContact edits a contact.
func (h *Handler) UpdateSupplierContact(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	contactID, ok := parseUintParam(c, "contact_id")
	if !ok {
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	contact, err := h.SupplierService.UpdateContact(actorID, contactID, contactInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, contact)
}

// DeleteSupplierContact removes a contact.
func (h *Handler) DeleteSupplierContact(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	contactID, ok := parseUintParam(c, "contact_id")
	if !ok {
		return
	}
	if err := h.SupplierService.DeleteContact(actorID, contactID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "contact deleted", nil)
}

func supplierInput(req SupplierRequest) service.SupplierInput {
	return service.SupplierInput{
		Name:    req.Name,
		RFC:     req.RFC,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
}

func contactInput(req ContactRequest) service.ContactInput {
	return service.ContactInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Position: req.Position,
	}
}
