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

// ClientRequest is the create/update payload for clients.
type ClientRequest struct {
	Type      string `json:"tipoCliente"`
	Name      string `json:"nombre" binding:"required"`
	LastNameP string `json:"apellidoP"`
	LastNameM string `json:"apellidoM"`
	RFC       string `json:"rfc"`
	Phone     string `json:"telefono"`
	Email     string `json:"email"`
	Address   string `json:"direccion"`
	Status    string `json:"estatus"`
}

// ClientStatusRequest toggles a client status.
type ClientStatusRequest struct {
	Status string `json:"estatus" binding:"required"`
}

// AddressRequest is the address payload.
type AddressRequest struct {
	Street  string `json:"calle" binding:"required"`
	City    string `json:"ciudad"`
	State   string `json:"estado"`
	ZipCode string `json:"cp"`
	Country string `json:"pais"`
}

// ListClients returns the client listing.
func (h *Handler) ListClients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	clients, total, err := h.ClientService.List(repository.ClientListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("tipo_cliente")),
		Search:   strings.TrimSpace(c.Query("buscar")),
		Status:   strings.TrimSpace(c.Query("estatus")),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, clients, buildPagination(page, pageSize, total))
}

// GetClient returns one client with addresses.
func (h *Handler) GetClient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	client, err := h.ClientService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, client)
}

// CreateClient registers a client.
func (h *Handler) CreateClient(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	client, err := h.ClientService.Create(actorID, clientInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, client)
}

// UpdateClient edits a client.
func (h *Handler) UpdateClient(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	client, err := h.ClientService.Update(actorID, id, clientInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, client)
}

// SetClientStatus toggles a client between Activo and Inactivo.
func (h *Handler) SetClientStatus(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ClientStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	client, err := h.ClientService.SetStatus(actorID, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, client)
}

// DeleteClient removes a client and its addresses.
func (h *Handler) DeleteClient(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ClientService.Delete(actorID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "client deleted", nil)
}

// ListClientAddresses returns the addresses of a client.
func (h *Handler) ListClientAddresses(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	addresses, err := h.ClientService.ListAddresses(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, addresses)
}

// CreateClientAddress adds an address to a client.
func (h *Handler) CreateClientAddress(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	address, err := h.ClientService.CreateAddress(actorID, id, addressInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// UpdateClientAddress edits an address.
func (h *Handler) UpdateClientAddress(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseUintParam(c, "address_id")
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	address, err := h.ClientService.UpdateAddress(actorID, addressID, addressInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// DeleteClientAddress removes an address.
func (h *Handler) DeleteClientAddress(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseUintParam(c, "address_id")
	if !ok {
		return
	}
	if err := h.ClientService.DeleteAddress(actorID, addressID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "address deleted", nil)
}

func clientInput(req ClientRequest) service.ClientInput {
	return service.ClientInput{
		Type:      req.Type,
		Name:      req.Name,
		LastNameP: req.LastNameP,
		LastNameM: req.LastNameM,
		RFC:       req.RFC,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Status:    req.Status,
	}
}

func addressInput(req AddressRequest) service.AddressInput {
	return service.AddressInput{
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Country: req.Country,
	}
}

// parseUintParam reads a named numeric path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
