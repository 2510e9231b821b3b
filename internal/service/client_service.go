package service

import (
	"strings"

	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"
)

// ClientService manages clientes and their addresses.
type ClientService struct {
	repo  repository.ClientRepository
	audit *AuditService
}

// NewClientService creates a client service.
func NewClientService(repo repository.ClientRepository, audit *AuditService) *ClientService {
	return &ClientService{repo: repo, audit: audit}
}

// ClientInput is the create/update payload.
type ClientInput struct {
	Type      string
	Name      string
	LastNameP string
	LastNameM string
	RFC       string
	Phone     string
	Email     string
	Address   string
	Status    string
}

// AddressInput is the address payload.
type AddressInput struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// List returns clients matching the filter.
func (s *ClientService) List(filter repository.ClientListFilter) ([]models.Client, int64, error) {
	return s.repo.List(filter)
}

// Get fetches one client with addresses.
func (s *ClientService) Get(id uint) (*models.Client, error) {
	client, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	return client, nil
}

// Create registers a client.
func (s *ClientService) Create(actorID uint, input ClientInput) (*models.Client, error) {
	if input.Type != constants.ClientTypePerson && input.Type != constants.ClientTypeCompany {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	status := input.Status
	if status == "" {
		status = constants.ClientStatusActive
	}
	client := models.Client{
		Type:      input.Type,
		Name:      strings.TrimSpace(input.Name),
		LastNameP: strings.TrimSpace(input.LastNameP),
		LastNameM: strings.TrimSpace(input.LastNameM),
		RFC:       strings.TrimSpace(input.RFC),
		Phone:     strings.TrimSpace(input.Phone),
		Email:     strings.TrimSpace(input.Email),
		Address:   strings.TrimSpace(input.Address),
		Status:    status,
	}
	if err := s.repo.Create(&client); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionCreate,
		Table:     constants.TableClients,
		RecordID:  &client.ID,
		NewValues: clientSnapshot(&client),
	})
	return &client, nil
}

// Update edits a client.
func (s *ClientService) Update(actorID, id uint, input ClientInput) (*models.Client, error) {
	client, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	before := clientSnapshot(client)
	client.Name = strings.TrimSpace(input.Name)
	client.LastNameP = strings.TrimSpace(input.LastNameP)
	client.LastNameM = strings.TrimSpace(input.LastNameM)
	client.RFC = strings.TrimSpace(input.RFC)
	client.Phone = strings.TrimSpace(input.Phone)
	client.Email = strings.TrimSpace(input.Email)
	client.Address = strings.TrimSpace(input.Address)
	if input.Status != "" {
		client.Status = input.Status
	}

	if err := s.repo.Update(client); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableClients,
		RecordID:  &client.ID,
		OldValues: before,
		NewValues: clientSnapshot(client),
	})
	return client, nil
}

// SetStatus toggles Activo/Inactivo.
func (s *ClientService) SetStatus(actorID, id uint, status string) (*models.Client, error) {
	if status != constants.ClientStatusActive && status != constants.ClientStatusInactive {
		return nil, ErrInvalidInput
	}
	client, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}

	before := clientSnapshot(client)
	client.Status = status
	if err := s.repo.Update(client); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableClients,
		RecordID:  &client.ID,
		OldValues: before,
		NewValues: clientSnapshot(client),
	})
	return client, nil
}

// Delete removes a client.
func (s *ClientService) Delete(actorID, id uint) error {
	client, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return ErrNotFound
	}

	before := clientSnapshot(client)
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionDelete,
		Table:     constants.TableClients,
		RecordID:  &id,
		OldValues: before,
	})
	return nil
}

// ListAddresses returns the addresses of a client.
func (s *ClientService) ListAddresses(clientID uint) ([]models.ClientAddress, error) {
	client, err := s.repo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	return s.repo.ListAddresses(clientID)
}

// CreateAddress adds an address to a client.
func (s *ClientService) CreateAddress(actorID, clientID uint, input AddressInput) (*models.ClientAddress, error) {
	client, err := s.repo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}

	address := models.ClientAddress{
		ClientID: clientID,
		Street:   strings.TrimSpace(input.Street),
		City:     strings.TrimSpace(input.City),
		State:    strings.TrimSpace(input.State),
		ZipCode:  strings.TrimSpace(input.ZipCode),
		Country:  strings.TrimSpace(input.Country),
	}
	if err := s.repo.CreateAddress(&address); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionCreate,
		Table:     constants.TableClientAddresses,
		RecordID:  &address.ID,
		NewValues: addressSnapshot(&address),
	})
	return &address, nil
}

// UpdateAddress edits an address.
func (s *ClientService) UpdateAddress(actorID, id uint, input AddressInput) (*models.ClientAddress, error) {
	address, err := s.repo.GetAddress(id)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrNotFound
	}

	before := addressSnapshot(address)
	address.Street = strings.TrimSpace(input.Street)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.ZipCode = strings.TrimSpace(input.ZipCode)
	address.Country = strings.TrimSpace(input.Country)
	if err := s.repo.UpdateAddress(address); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableClientAddresses,
		RecordID:  &address.ID,
		OldValues: before,
		NewValues: addressSnapshot(address),
	})
	return address, nil
}

// DeleteAddress removes an address.
func (s *ClientService) DeleteAddress(actorID, id uint) error {
	address, err := s.repo.GetAddress(id)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrNotFound
	}

	before := addressSnapshot(address)
	if err := s.repo.DeleteAddress(id); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionDelete,
		Table:     constants.TableClientAddresses,
		RecordID:  &id,
		OldValues: before,
	})
	return nil
}

func clientSnapshot(client *models.Client) map[string]interface{} {
	return map[string]interface{}{
		"tipo_cliente": client.Type,
		"nombre":       client.Name,
		"apellido_p":   client.LastNameP,
		"apellido_m":   client.LastNameM,
		"rfc":          client.RFC,
		"telefono":     client.Phone,
		"email":        client.Email,
		"direccion":    client.Address,
		"estatus":      client.Status,
	}
}

func addressSnapshot(address *models.ClientAddress) map[string]interface{} {
	return map[string]interface{}{
		"id_cliente": address.ClientID,
		"calle":      address.Street,
		"ciudad":     address.City,
		"estado":     address.State,
		"cp":         address.ZipCode,
		"pais":       address.Country,
	}
}
