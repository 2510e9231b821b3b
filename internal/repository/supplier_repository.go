package repository

import (
	"errors"

	"github.com/gestor-next/internal/models"

	"gorm.io/gorm"
)

// SupplierRepository covers proveedores and their contactos.
type SupplierRepository interface {
	List() ([]models.Supplier, error)
	GetByID(id uint) (*models.Supplier, error)
	Create(supplier *models.Supplier) error
	Update(supplier *models.Supplier) error
	Delete(id uint) error
	CountProducts(supplierID uint) (int64, error)
	ReassignProducts(fromSupplierID, toSupplierID uint) (int64, error)

	ListContacts(supplierID uint) ([]models.SupplierContact, error)
	GetContact(id uint) (*models.SupplierContact, error)
	CreateContact(contact *models.SupplierContact) error
	UpdateContact(contact *models.SupplierContact) error
	DeleteContact(id uint) error
}

// GormSupplierRepository is the GORM implementation.
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a supplier repository.
func NewSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// List returns all suppliers.
func (r *GormSupplierRepository) List() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.db.Order("nombre ASC").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// GetByID fetches a supplier with its contacts.
func (r *GormSupplierRepository) GetByID(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.Preload("Contacts").First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// Create inserts a supplier.
func (r *GormSupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

// Update saves a supplier.
func (r *GormSupplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

// Delete removes a supplier and its contacts.
func (r *GormSupplierRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_proveedor = ?", id).Delete(&models.SupplierContact{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Supplier{}, id).Error
	})
}

// CountProducts counts products referencing a supplier.
func (r *GormSupplierRepository) CountProducts(supplierID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("id_proveedor = ?", supplierID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReassignProducts moves every product from one supplier to another and
// returns how many rows moved.
func (r *GormSupplierRepository) ReassignProducts(fromSupplierID, toSupplierID uint) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("id_proveedor = ?", fromSupplierID).
		Update("id_proveedor", toSupplierID)
	return result.RowsAffected, result.Error
}

// ListContacts returns the contacts of a supplier.
func (r *GormSupplierRepository) ListContacts(supplierID uint) ([]models.SupplierContact, error) {
	var contacts []models.SupplierContact
	if err := r.db.Where("id_proveedor = ?", supplierID).Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetContact fetches one contact.
func (r *GormSupplierRepository) GetContact(id uint) (*models.SupplierContact, error) {
	var contact models.SupplierContact
	if err := r.db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

// CreateContact inserts a contact.
func (r *GormSupplierRepository) CreateContact(contact *models.SupplierContact) error {
	return r.db.Create(contact).Error
}

// UpdateContact saves a contact.
func (r *GormSupplierRepository) UpdateContact(contact *models.SupplierContact) error {
	return r.db.Save(contact).Error
}

// DeleteContact removes a contact.
func (r *GormSupplierRepository) DeleteContact(id uint) error {
	return r.db.Delete(&models.SupplierContact{}, id).Error
}
