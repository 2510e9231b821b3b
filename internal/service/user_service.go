package service

import (
	"strings"

	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"
)

// UserService manages usuarios. Every mutation is audited and guarded
// against touching superadmin accounts.
type UserService struct {
	repo  repository.UserRepository
	roles repository.RoleRepository
	auth  *AuthService
	audit *AuditService
}

// NewUserService creates a user service.
func NewUserService(
	repo repository.UserRepository,
	roles repository.RoleRepository,
	auth *AuthService,
	audit *AuditService,
) *UserService {
	return &UserService{repo: repo, roles: roles, auth: auth, audit: audit}
}

// CreateUserInput is the create payload.
type CreateUserInput struct {
	Username  string
	FirstName string
	LastNameP string
	LastNameM string
	Email     string
	Phone     string
	Password  string
	RoleID    *uint
	Status    string
}

// UpdateUserInput is the update payload. Password empty keeps the hash.
type UpdateUserInput struct {
	FirstName string
	LastNameP string
	LastNameM string
	Email     string
	Phone     string
	Password  string
	RoleID    *uint
	Status    string
}

// List returns non-superadmin users.
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.repo.List(filter)
}

// Get fetches one user.
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Create registers a user.
func (s *UserService) Create(actorID uint, input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		byEmail, err := s.repo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if byEmail != nil {
			return nil, ErrDuplicate
		}
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = constants.UserStatusActive
	}
	user := models.User{
		Username:     username,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastNameP:    strings.TrimSpace(input.LastNameP),
		LastNameM:    strings.TrimSpace(input.LastNameM),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		RoleID:       input.RoleID,
		Status:       status,
	}
	if err := s.repo.Create(&user); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionCreate,
		Table:     constants.TableUsers,
		RecordID:  &user.ID,
		NewValues: userSnapshot(&user),
	})
	return &user, nil
}

// Update edits a user. Superadmin targets are rejected unless the actor
// is a superadmin too.
func (s *UserService) Update(actorID, id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := s.guardSuperadmin(actorID, user); err != nil {
		return nil, err
	}

	before := userSnapshot(user)

	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastNameP = strings.TrimSpace(input.LastNameP)
	user.LastNameM = strings.TrimSpace(input.LastNameM)
	user.Email = strings.TrimSpace(input.Email)
	user.Phone = strings.TrimSpace(input.Phone)
	user.RoleID = input.RoleID
	if input.Status != "" {
		user.Status = input.Status
	}
	if strings.TrimSpace(input.Password) != "" {
		hash, err := s.auth.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableUsers,
		RecordID:  &user.ID,
		OldValues: before,
		NewValues: userSnapshot(user),
	})
	return user, nil
}

// SetStatus toggles Activo/Inactivo.
func (s *UserService) SetStatus(actorID, id uint, status string) (*models.User, error) {
	if status != constants.UserStatusActive && status != constants.UserStatusInactive {
		return nil, ErrInvalidInput
	}
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := s.guardSuperadmin(actorID, user); err != nil {
		return nil, err
	}

	before := userSnapshot(user)
	user.Status = status
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableUsers,
		RecordID:  &user.ID,
		OldValues: before,
		NewValues: userSnapshot(user),
	})
	return user, nil
}

// SetPhoto stores the profile photo filename; empty removes it.
func (s *UserService) SetPhoto(actorID, id uint, filename string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := s.guardSuperadmin(actorID, user); err != nil {
		return nil, err
	}

	before := userSnapshot(user)
	user.Photo = filename
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableUsers,
		RecordID:  &user.ID,
		OldValues: before,
		NewValues: userSnapshot(user),
	})
	return user, nil
}

// Delete removes a user.
func (s *UserService) Delete(actorID, id uint) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.guardSuperadmin(actorID, user); err != nil {
		return err
	}

	before := userSnapshot(user)
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionDelete,
		Table:     constants.TableUsers,
		RecordID:  &id,
		OldValues: before,
	})
	return nil
}

// guardSuperadmin rejects mutations of superadmin targets by non-superadmin
// actors.
func (s *UserService) guardSuperadmin(actorID uint, target *models.User) error {
	if !target.IsSuperadmin {
		return nil
	}
	actor, err := s.repo.GetByID(actorID)
	if err != nil {
		return err
	}
	if actor == nil || !actor.IsSuperadmin {
		return ErrSuperadminProtected
	}
	return nil
}

// userSnapshot builds the audit field map. The password hash is masked.
func userSnapshot(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"nombre_usuario": user.Username,
		"nombre":         user.FirstName,
		"apellido_p":     user.LastNameP,
		"apellido_m":     user.LastNameM,
		"email":          user.Email,
		"telefono":       user.Phone,
		"password":       constants.MaskedSecret,
		"id_rol":         user.RoleID,
		"estatus":        user.Status,
		"foto":           user.Photo,
	}
}
