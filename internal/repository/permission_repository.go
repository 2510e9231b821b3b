package repository

import (
	"errors"

	"github.com/gestor-next/internal/models"

	"gorm.io/gorm"
)

// PermissionRepository covers the permission catalog and both grant edges.
type PermissionRepository interface {
	List() ([]models.Permission, error)
	GetByID(id uint) (*models.Permission, error)
	GetByTableAction(table, action string) (*models.Permission, error)
	Create(permission *models.Permission) error

	ListByUser(userID uint) ([]models.Permission, error)
	ListByRole(roleID uint) ([]models.Permission, error)

	GrantToUser(userID, permissionID uint) error
	RevokeFromUser(userID, permissionID uint) error
	GrantToRole(roleID, permissionID uint) error
	RevokeFromRole(roleID, permissionID uint) error
}

// GormPermissionRepository is the GORM implementation.
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a permission repository.
func NewPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// List returns the full permission catalog.
func (r *GormPermissionRepository) List() ([]models.Permission, error) {
	var permissions []models.Permission
	if err := r.db.Order("tabla ASC, accion ASC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// GetByID fetches a permission by primary key.
func (r *GormPermissionRepository) GetByID(id uint) (*models.Permission, error) {
	var permission models.Permission
	if err := r.db.First(&permission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

// GetByTableAction fetches a permission by its (tabla, accion) pair.
func (r *GormPermissionRepository) GetByTableAction(table, action string) (*models.Permission, error) {
	var permission models.Permission
	if err := r.db.Where("tabla = ? AND accion = ?", table, action).First(&permission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

// Create inserts a permission catalog entry.
func (r *GormPermissionRepository) Create(permission *models.Permission) error {
	return r.db.Create(permission).Error
}

// ListByUser returns the permissions granted directly to a user.
func (r *GormPermissionRepository) ListByUser(userID uint) ([]models.Permission, error) {
	var permissions []models.Permission
	err := r.db.
		Joins("JOIN usuario_permisos ON usuario_permisos.id_permiso = permisos.id").
		Where("usuario_permisos.id_usuario = ?", userID).
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// ListByRole returns the permissions granted to a role.
func (r *GormPermissionRepository) ListByRole(roleID uint) ([]models.Permission, error) {
	var permissions []models.Permission
	err := r.db.
		Joins("JOIN rol_permisos ON rol_permisos.id_permiso = permisos.id").
		Where("rol_permisos.id_rol = ?", roleID).
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// GrantToUser adds a direct grant. Granting twice is a no-op.
func (r *GormPermissionRepository) GrantToUser(userID, permissionID uint) error {
	var count int64
	if err := r.db.Model(&models.UserPermission{}).
		Where("id_usuario = ? AND id_permiso = ?", userID, permissionID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.Create(&models.UserPermission{UserID: userID, PermissionID: permissionID}).Error
}

// RevokeFromUser removes a direct grant. Revoking an absent grant is a no-op.
func (r *GormPermissionRepository) RevokeFromUser(userID, permissionID uint) error {
	return r.db.
		Where("id_usuario = ? AND id_permiso = ?", userID, permissionID).
		Delete(&models.UserPermission{}).Error
}

// GrantToRole adds a role grant. Granting twice is a no-op.
func (r *GormPermissionRepository) GrantToRole(roleID, permissionID uint) error {
	var count int64
	if err := r.db.Model(&models.RolePermission{}).
		Where("id_rol = ? AND id_permiso = ?", roleID, permissionID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.Create(&models.RolePermission{RoleID: roleID, PermissionID: permissionID}).Error
}

// RevokeFromRole removes a role grant. Revoking an absent grant is a no-op.
func (r *GormPermissionRepository) RevokeFromRole(roleID, permissionID uint) error {
	return r.db.
		Where("id_rol = ? AND id_permiso = ?", roleID, permissionID).
		Delete(&models.RolePermission{}).Error
}
