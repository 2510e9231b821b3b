package repository

import (
	"errors"

	"github.com/gestor-next/internal/models"

	"gorm.io/gorm"
)

// ClientRepository is the clientes data access interface.
type ClientRepository interface {
	List(filter ClientListFilter) ([]models.Client, int64, error)
	GetByID(id uint) (*models.Client, error)
	Create(client *models.Client) error
	Update(client *models.Client) error
	Delete(id uint) error

	ListAddresses(clientID uint) ([]models.ClientAddress, error)
	GetAddress(id uint) (*models.ClientAddress, error)
	CreateAddress(address *models.ClientAddress) error
	UpdateAddress(address *models.ClientAddress) error
	DeleteAddress(id uint) error
}

// GormClientRepository is the GORM implementation.
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a client repository.
func NewClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// List returns clients matching the filter plus the total count.
func (r *GormClientRepository) List(filter ClientListFilter) ([]models.Client, int64, error) {
	query := r.db.Model(&models.Client{})
	if filter.Type != "" {
		query = query.Where("tipo_cliente = ?", filter.Type)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"nombre LIKE ? OR apellido_p LIKE ? OR rfc LIKE ? OR email LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Status != "" {
		query = query.Where("estatus = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	if err := applyPagination(query.Order("id ASC"), filter.Page, filter.PageSize).
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// GetByID fetches a client with its addresses.
func (r *GormClientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.Preload("Addresses").First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// Create inserts a client.
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// Update saves a client.
func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete removes a client and its addresses.
func (r *GormClientRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_cliente = ?", id).Delete(&models.ClientAddress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Client{}, id).Error
	})
}

// ListAddresses returns the addresses of a client.
func (r *GormClientRepository) ListAddresses(clientID uint) ([]models.ClientAddress, error) {
	var addresses []models.ClientAddress
	if err := r.db.Where("id_cliente = ?", clientID).Order("id ASC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetAddress fetches one address.
func (r *GormClientRepository) GetAddress(id uint) (*models.ClientAddress, error) {
	var address models.ClientAddress
	if err := r.db.First(&address, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// CreateAddress inserts an address.
func (r *GormClientRepository) CreateAddress(address *models.ClientAddress) error {
	return r.db.Create(address).Error
}

// UpdateAddress saves an address.
func (r *GormClientRepository) UpdateAddress(address *models.ClientAddress) error {
	return r.db.Save(address).Error
}

// DeleteAddress removes an address.
func (r *GormClientRepository) DeleteAddress(id uint) error {
	return r.db.Delete(&models.ClientAddress{}, id).Error
}
