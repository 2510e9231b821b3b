package constants

// User status values (stored as-is, the API speaks Spanish).
const (
	UserStatusActive   = "Activo"
	UserStatusInactive = "Inactivo"
)

// Client types.
const (
	ClientTypePerson  = "Persona"
	ClientTypeCompany = "Empresa"
)

// Client status values.
const (
	ClientStatusActive   = "Activo"
	ClientStatusInactive = "Inactivo"
)

// Quotation status values.
const (
	QuotationStatusDraft    = "borrador"
	QuotationStatusSaved    = "guardada"
	QuotationStatusSent     = "enviada"
	QuotationStatusCanceled = "cancelada"
)

// Permission actions. The catalog is tables x CRUD, plus the supplier
// reassignment action.
const (
	ActionCreate   = "create"
	ActionRead     = "read"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionReassign = "reasignar"
)

// Audit actions.
const (
	AuditActionCreate   = "create"
	AuditActionUpdate   = "update"
	AuditActionDelete   = "delete"
	AuditActionLogin    = "login"
	AuditActionLogout   = "logout"
	AuditActionReassign = "reassign"
)

// Managed table names, as used in permission rows and audit rows.
const (
	TableUsers            = "usuarios"
	TableRoles            = "roles"
	TablePermissions      = "permisos"
	TableRolePermissions  = "rol_permisos"
	TableUserPermissions  = "usuario_permisos"
	TableSessions         = "historico_sesiones"
	TableAudit            = "auditoria"
	TableClients          = "clientes"
	TableClientAddresses  = "direcciones"
	TableCategories       = "categorias"
	TableSuppliers        = "proveedores"
	TableSupplierContacts = "contactos"
	TableProducts         = "productos"
	TableQuotations       = "cotizaciones"
	TableQuotationItems   = "cotizacion_items"
)

// Permission grant targets.
const (
	GrantTargetUser = "usuario"
	GrantTargetRole = "rol"
)

// Masked value written to audit snapshots instead of password hashes.
const MaskedSecret = "******"

// Quotation folio formats.
const (
	FolioFormat            = "Q-%05d"
	FolioProvisionalPrefix = "PEND-"
)

// Default redis key prefix.
const RedisPrefixDefault = "gestor"

// Default seeded role.
const DefaultAdminRoleName = "Administrador"
