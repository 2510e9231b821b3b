package repository

import "time"

// UserListFilter filters the user listing. Superadmins are always excluded.
type UserListFilter struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	RoleID   uint
}

// ClientListFilter filters the client listing.
type ClientListFilter struct {
	Page     int
	PageSize int
	Type     string
	Search   string
	Status   string
}

// ProductListFilter filters the product listing.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	SupplierID   uint
	Search       string
	WithCategory bool
	WithSupplier bool
}

// QuotationListFilter filters the quotation listing.
type QuotationListFilter struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	ClientID uint
	DateFrom *time.Time
	DateTo   *time.Time
	OrderBy  string
}

// AuditListFilter filters the audit trail listing.
type AuditListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Table    string
	Action   string
	DateFrom *time.Time
	DateTo   *time.Time
}
