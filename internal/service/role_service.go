package service

import (
	"strings"

	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"
)

// RoleService manages roles.
type RoleService struct {
	repo        repository.RoleRepository
	users       repository.UserRepository
	permissions repository.PermissionRepository
	audit       *AuditService
}

// NewRoleService creates a role service.
func NewRoleService(
	repo repository.RoleRepository,
	users repository.UserRepository,
	permissions repository.PermissionRepository,
	audit *AuditService,
) *RoleService {
	return &RoleService{repo: repo, users: users, permissions: permissions, audit: audit}
}

// RoleInput is the create/update payload.
type RoleInput struct {
	Name        string
	Description string
}

// List returns all roles.
func (s *RoleService) List() ([]models.Role, error) {
	return s.repo.List()
}

// Get fetches one role.
func (s *RoleService) Get(id uint) (*models.Role, error) {
	role, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrNotFound
	}
	return role, nil
}

// Create registers a role.
func (s *RoleService) Create(actorID uint, input RoleInput) (*models.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	existing, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	role := models.Role{Name: name, Description: strings.TrimSpace(input.Description)}
	if err := s.repo.Create(&role); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionCreate,
		Table:     constants.TableRoles,
		RecordID:  &role.ID,
		NewValues: roleSnapshot(&role),
	})
	return &role, nil
}

// Update edits a role.
func (s *RoleService) Update(actorID, id uint, input RoleInput) (*models.Role, error) {
	role, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if name != role.Name {
		existing, err := s.repo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicate
		}
	}

	before := roleSnapshot(role)
	role.Name = name
	role.Description = strings.TrimSpace(input.Description)
	if err := s.repo.Update(role); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableRoles,
		RecordID:  &role.ID,
		OldValues: before,
		NewValues: roleSnapshot(role),
	})
	return role, nil
}

// Delete removes a role. Roles still held by users are refused.
func (s *RoleService) Delete(actorID, id uint) error {
	role, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrNotFound
	}

	count, err := s.users.CountByRole(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRoleInUse
	}

	before := roleSnapshot(role)
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionDelete,
		Table:     constants.TableRoles,
		RecordID:  &id,
		OldValues: before,
	})
	return nil
}

// Permissions returns the grants of a role.
func (s *RoleService) Permissions(id uint) ([]models.Permission, error) {
	role, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrNotFound
	}
	return s.permissions.ListByRole(id)
}

// Users returns the users holding a role.
func (s *RoleService) Users(id uint) ([]models.User, error) {
	role, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrNotFound
	}
	return s.repo.ListUsers(id)
}

func roleSnapshot(role *models.Role) map[string]interface{} {
	return map[string]interface{}{
		"nombre_rol":  role.Name,
		"descripcion": role.Description,
	}
}
