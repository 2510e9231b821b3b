package service

import (
	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"
)

// PermissionService serves the catalog and manages grant edges.
type PermissionService struct {
	repo  repository.PermissionRepository
	users repository.UserRepository
	roles repository.RoleRepository
	audit *AuditService
}

// NewPermissionService creates a permission service.
func NewPermissionService(
	repo repository.PermissionRepository,
	users repository.UserRepository,
	roles repository.RoleRepository,
	audit *AuditService,
) *PermissionService {
	return &PermissionService{repo: repo, users: users, roles: roles, audit: audit}
}

// List returns the permission catalog.
func (s *PermissionService) List() ([]models.Permission, error) {
	return s.repo.List()
}

// ListForUser returns the direct grants of a user.
func (s *PermissionService) ListForUser(userID uint) ([]models.Permission, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

// GrantInput targets a user or a role.
type GrantInput struct {
	TargetType   string // usuario | rol
	TargetID     uint
	PermissionID uint
	Grant        bool // false revokes
}

// Apply grants or revokes one permission edge. Repeats are idempotent.
func (s *PermissionService) Apply(actorID uint, input GrantInput) error {
	permission, err := s.repo.GetByID(input.PermissionID)
	if err != nil {
		return err
	}
	if permission == nil {
		return ErrNotFound
	}

	switch input.TargetType {
	case constants.GrantTargetUser:
		user, err := s.users.GetByID(input.TargetID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNotFound
		}
		if input.Grant {
			err = s.repo.GrantToUser(input.TargetID, input.PermissionID)
		} else {
			err = s.repo.RevokeFromUser(input.TargetID, input.PermissionID)
		}
		if err != nil {
			return err
		}
		s.recordGrant(actorID, constants.TableUserPermissions, input, permission)
		return nil

	case constants.GrantTargetRole:
		role, err := s.roles.GetByID(input.TargetID)
		if err != nil {
			return err
		}
		if role == nil {
			return ErrNotFound
		}
		if input.Grant {
			err = s.repo.GrantToRole(input.TargetID, input.PermissionID)
		} else {
			err = s.repo.RevokeFromRole(input.TargetID, input.PermissionID)
		}
		if err != nil {
			return err
		}
		s.recordGrant(actorID, constants.TableRolePermissions, input, permission)
		return nil

	default:
		return ErrInvalidInput
	}
}

func (s *PermissionService) recordGrant(actorID uint, table string, input GrantInput, permission *models.Permission) {
	state := "revocado"
	if input.Grant {
		state = "concedido"
	}
	s.audit.Record(AuditInput{
		UserID:   &actorID,
		Action:   constants.AuditActionUpdate,
		Table:    table,
		RecordID: &input.TargetID,
		NewValues: map[string]interface{}{
			"id_permiso": permission.ID,
			"tabla":      permission.Table,
			"accion":     permission.Action,
			"estado":     state,
		},
	})
}
