package service

import (
	"strings"

	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"
)

// SupplierService manages proveedores and contactos.
type SupplierService struct {
	repo  repository.SupplierRepository
	audit *AuditService
}

// NewSupplierService creates a supplier service.
func NewSupplierService(repo repository.SupplierRepository, audit *AuditService) *SupplierService {
	return &SupplierService{repo: repo, audit: audit}
}

// SupplierInput is the create/update payload.
type SupplierInput struct {
	Name    string
	RFC     string
	Phone   string
	Email   string
	Address string
}

// ContactInput is the contact payload.
type ContactInput struct {
	Name     string
	Phone    string
	Email    string
	Position string
}

// List returns all suppliers.
func (s *SupplierService) List() ([]models.Supplier, error) {
	return s.repo.List()
}

// Get fetches one supplier with contacts.
func (s *SupplierService) Get(id uint) (*models.Supplier, error) {
	supplier, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrNotFound
	}
	return supplier, nil
}

// Create registers a supplier.
func (s *SupplierService) Create(actorID uint, input SupplierInput) (*models.Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	supplier := models.Supplier{
		Name:    strings.TrimSpace(input.Name),
		RFC:     strings.TrimSpace(input.RFC),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
	}
	if err := s.repo.Create(&supplier); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionCreate,
		Table:     constants.TableSuppliers,
		RecordID:  &supplier.ID,
		NewValues: supplierSnapshot(&supplier),
	})
	return &supplier, nil
}

// Update edits a supplier.
func (s *SupplierService) Update(actorID, id uint, input SupplierInput) (*models.Supplier, error) {
	supplier, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	before := supplierSnapshot(supplier)
	supplier.Name = strings.TrimSpace(input.Name)
	supplier.RFC = strings.TrimSpace(input.RFC)
	supplier.Phone = strings.TrimSpace(input.Phone)
	supplier.Email = strings.TrimSpace(input.Email)
	supplier.Address = strings.TrimSpace(input.Address)
	if err := s.repo.Update(supplier); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableSuppliers,
		RecordID:  &supplier.ID,
		OldValues: before,
		NewValues: supplierSnapshot(supplier),
	})
	return supplier, nil
}

// Delete removes a supplier. Suppliers still referenced by products are
// refused; use Reassign first.
func (s *SupplierService) Delete(actorID, id uint) error {
	supplier, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return ErrNotFound
	}

	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSupplierInUse
	}

	before := supplierSnapshot(supplier)
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionDelete,
		Table:     constants.TableSuppliers,
		RecordID:  &id,
		OldValues: before,
	})
	return nil
}

// Reassign moves every product of one supplier to another and audits the
// move as a reassign action.
func (s *SupplierService) Reassign(actorID, fromID, toID uint) (int64, error) {
	if fromID == toID {
		return 0, ErrInvalidInput
	}
	from, err := s.repo.GetByID(fromID)
	if err != nil {
		return 0, err
	}
	if from == nil {
		return 0, ErrNotFound
	}
	to, err := s.repo.GetByID(toID)
	if err != nil {
		return 0, err
	}
	if to == nil {
		return 0, ErrNotFound
	}

	moved, err := s.repo.ReassignProducts(fromID, toID)
	if err != nil {
		return 0, err
	}

	s.audit.Record(AuditInput{
		UserID:   &actorID,
		Action:   constants.AuditActionReassign,
		Table:    constants.TableSuppliers,
		RecordID: &fromID,
		OldValues: map[string]interface{}{
			"id_proveedor": fromID,
			"proveedor":    from.Name,
		},
		NewValues: map[string]interface{}{
			"id_proveedor":      toID,
			"proveedor":         to.Name,
			"productos_movidos": moved,
		},
	})
	return moved, nil
}

// ListContacts returns the contacts of a supplier.
func (s *SupplierService) ListContacts(supplierID uint) ([]models.SupplierContact, error) {
	supplier, err := s.repo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrNotFound
	}
	return s.repo.ListContacts(supplierID)
}

// CreateContact adds a contact to a supplier.
func (s *SupplierService) CreateContact(actorID, supplierID uint, input ContactInput) (*models.SupplierContact, error) {
	supplier, err := s.repo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	contact := models.SupplierContact{
		SupplierID: supplierID,
		Name:       strings.TrimSpace(input.Name),
		Phone:      strings.TrimSpace(input.Phone),
		Email:      strings.TrimSpace(input.Email),
		Position:   strings.TrimSpace(input.Position),
	}
	if err := s.repo.CreateContact(&contact); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionCreate,
		Table:     constants.TableSupplierContacts,
		RecordID:  &contact.ID,
		NewValues: contactSnapshot(&contact),
	})
	return &contact, nil
}

// UpdateContact edits a contact.
func (s *SupplierService) UpdateContact(actorID, id uint, input ContactInput) (*models.SupplierContact, error) {
	contact, err := s.repo.GetContact(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	before := contactSnapshot(contact)
	contact.Name = strings.TrimSpace(input.Name)
	contact.Phone = strings.TrimSpace(input.Phone)
	contact.Email = strings.TrimSpace(input.Email)
	contact.Position = strings.TrimSpace(input.Position)
	if err := s.repo.UpdateContact(contact); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableSupplierContacts,
		RecordID:  &contact.ID,
		OldValues: before,
		NewValues: contactSnapshot(contact),
	})
	return contact, nil
}

// DeleteContact removes a contact.
func (s *SupplierService) DeleteContact(actorID, id uint) error {
	contact, err := s.repo.GetContact(id)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrNotFound
	}

	before := contactSnapshot(contact)
	if err := s.repo.DeleteContact(id); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionDelete,
		Table:     constants.TableSupplierContacts,
		RecordID:  &id,
		OldValues: before,
	})
	return nil
}

func supplierSnapshot(supplier *models.Supplier) map[string]interface{} {
	return map[string]interface{}{
		"nombre":    supplier.Name,
		"rfc":       supplier.RFC,
		"telefono":  supplier.Phone,
		"email":     supplier.Email,
		"direccion": supplier.Address,
	}
}

func contactSnapshot(contact *models.SupplierContact) map[string]interface{} {
	return map[string]interface{}{
		"id_proveedor": contact.SupplierID,
		"nombre":       contact.Name,
		"telefono":     contact.Phone,
		"email":        contact.Email,
		"puesto":       contact.Position,
	}
}
