package repository

import (
	"errors"

	"github.com/gestor-next/internal/models"

	"gorm.io/gorm"
)

// RoleRepository is the roles data access interface.
type RoleRepository interface {
	List() ([]models.Role, error)
	GetByID(id uint) (*models.Role, error)
	GetByName(name string) (*models.Role, error)
	Create(role *models.Role) error
	Update(role *models.Role) error
	Delete(id uint) error
	ListUsers(roleID uint) ([]models.User, error)
}

// GormRoleRepository is the GORM implementation.
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a role repository.
func NewRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// List returns all roles.
func (r *GormRoleRepository) List() ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// GetByID fetches a role by primary key.
func (r *GormRoleRepository) GetByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// GetByName fetches a role by name.
func (r *GormRoleRepository) GetByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("nombre_rol = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// Create inserts a role.
func (r *GormRoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// Update saves a role.
func (r *GormRoleRepository) Update(role *models.Role) error {
	return r.db.Save(role).Error
}

// Delete removes a role and its permission grants.
func (r *GormRoleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_rol = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Role{}, id).Error
	})
}

// ListUsers returns the users holding a role.
func (r *GormRoleRepository) ListUsers(roleID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("id_rol = ?", roleID).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
