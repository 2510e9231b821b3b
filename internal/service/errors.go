package service

import "errors"

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidCredentials means username or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserInactive means the account exists but is not Activo.
	ErrUserInactive = errors.New("user is inactive")
	// ErrDuplicate means a unique field is already taken.
	ErrDuplicate = errors.New("duplicate record")
	// ErrSuperadminProtected means a non-superadmin tried to mutate a
	// superadmin account.
	ErrSuperadminProtected = errors.New("superadmin accounts cannot be modified")
	// ErrRoleInUse means a role still has users and cannot be deleted.
	ErrRoleInUse = errors.New("role still assigned to users")
	// ErrCategoryInUse means products still reference the category.
	ErrCategoryInUse = errors.New("category still referenced by products")
	// ErrSupplierInUse means products still reference the supplier.
	ErrSupplierInUse = errors.New("supplier still referenced by products")
	// ErrInvalidInput covers validation failures on service inputs.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited means too many failed login attempts.
	ErrRateLimited = errors.New("too many attempts, try again later")
)
