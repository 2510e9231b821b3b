package authz

import (
	"fmt"
	"strings"

	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"
)

// Requirement names one permission as a (tabla, accion) pair.
type Requirement struct {
	Table  string
	Action string
}

// PermissionSet is a deduplicated set of held permissions keyed by
// (tabla, accion).
type PermissionSet map[Requirement]struct{}

// Has reports whether the set contains the requirement.
func (s PermissionSet) Has(required Requirement) bool {
	_, ok := s[required]
	return ok
}

// Service is the authorization gate. It is read-only: authorization never
// writes and never caches across requests.
type Service struct {
	sessions    repository.SessionRepository
	users       repository.UserRepository
	permissions repository.PermissionRepository
}

// NewService creates the gate.
func NewService(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	permissions repository.PermissionRepository,
) *Service {
	return &Service{
		sessions:    sessions,
		users:       users,
		permissions: permissions,
	}
}

// Authorize resolves a raw token to an authenticated user id and, when
// required is non-nil, checks the permission. Superadmins pass every
// permission check. Datastore failures deny access.
func (s *Service) Authorize(token string, required *Requirement) (uint, error) {
	token = NormalizeToken(token)
	if token == "" {
		return 0, ErrMissingToken
	}

	session, err := s.sessions.GetActiveByToken(token)
	if err != nil {
		return 0, fmt.Errorf("session lookup failed: %w", err)
	}
	if session == nil {
		return 0, ErrInvalidSession
	}

	user, err := s.users.GetByID(session.UserID)
	if err != nil {
		return 0, fmt.Errorf("user lookup failed: %w", err)
	}
	if user == nil {
		return 0, ErrInvalidSession
	}

	if required == nil {
		return user.ID, nil
	}
	if user.IsSuperadmin {
		return user.ID, nil
	}

	held, err := s.EffectivePermissions(user.ID)
	if err != nil {
		return 0, fmt.Errorf("permission resolution failed: %w", err)
	}
	if !held.Has(*required) {
		return 0, ErrPermissionDenied
	}
	return user.ID, nil
}

// EffectivePermissions returns the union of role-inherited and direct
// grants. An empty set is a valid result, not an error.
func (s *Service) EffectivePermissions(userID uint) (PermissionSet, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return PermissionSet{}, nil
	}

	set := PermissionSet{}
	addAll := func(permissions []models.Permission) {
		for _, p := range permissions {
			set[Requirement{Table: p.Table, Action: p.Action}] = struct{}{}
		}
	}

	if user.RoleID != nil && *user.RoleID > 0 {
		rolePerms, err := s.permissions.ListByRole(*user.RoleID)
		if err != nil {
			return nil, err
		}
		addAll(rolePerms)
	}

	directPerms, err := s.permissions.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	addAll(directPerms)

	return set, nil
}

// NormalizeToken strips whitespace and a case-insensitive Bearer prefix.
func NormalizeToken(token string) string {
	token = strings.TrimSpace(token)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
