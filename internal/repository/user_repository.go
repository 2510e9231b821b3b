package repository

import (
	"errors"

	"github.com/gestor-next/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the usuarios data access interface.
type UserRepository interface {
	List(filter UserListFilter) ([]models.User, int64, error)
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uint) error
	CountByRole(roleID uint) (int64, error)
}

// GormUserRepository is the GORM implementation.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// List returns non-superadmin users matching the filter plus the total count.
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Where("is_superadmin = ?", false)
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"nombre_usuario LIKE ? OR nombre LIKE ? OR apellido_p LIKE ? OR email LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Status != "" {
		query = query.Where("estatus = ?", filter.Status)
	}
	if filter.RoleID > 0 {
		query = query.Where("id_rol = ?", filter.RoleID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := applyPagination(query.Preload("Role").Order("id ASC"), filter.Page, filter.PageSize).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GetByID fetches a user by primary key.
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername fetches a user by login name.
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("nombre_usuario = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email.
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves a user.
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user and its direct permission grants.
func (r *GormUserRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_usuario = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// CountByRole counts users holding a role.
func (r *GormUserRepository) CountByRole(roleID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("id_rol = ?", roleID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
