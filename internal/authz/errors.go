package authz

import "errors"

var (
	// ErrMissingToken means the request carried no usable token.
	ErrMissingToken = errors.New("missing session token")
	// ErrInvalidSession means the token matches no active session.
	ErrInvalidSession = errors.New("invalid or expired session")
	// ErrPermissionDenied means the session is valid but the permission
	// is not held.
	ErrPermissionDenied = errors.New("permission denied")
)
