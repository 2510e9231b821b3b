package models

// Permission is one entry of the fixed (tabla, accion) catalog.
type Permission struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Table  string `gorm:"column:tabla;not null;uniqueIndex:idx_permiso_tabla_accion" json:"tabla"`
	Action string `gorm:"column:accion;not null;uniqueIndex:idx_permiso_tabla_accion" json:"accion"`
}

// TableName sets the table name.
func (Permission) TableName() string {
	return "permisos"
}

// RolePermission grants a permission to every holder of a role.
type RolePermission struct {
	ID           uint `gorm:"primarykey" json:"id"`
	RoleID       uint `gorm:"column:id_rol;not null;uniqueIndex:idx_rol_permiso" json:"idRol"`
	PermissionID uint `gorm:"column:id_permiso;not null;uniqueIndex:idx_rol_permiso" json:"idPermiso"`
}

// TableName sets the table name.
func (RolePermission) TableName() string {
	return "rol_permisos"
}

// UserPermission grants a permission directly to one user.
type UserPermission struct {
	ID           uint `gorm:"primarykey" json:"id"`
	UserID       uint `gorm:"column:id_usuario;not null;uniqueIndex:idx_usuario_permiso" json:"idUsuario"`
	PermissionID uint `gorm:"column:id_permiso;not null;uniqueIndex:idx_usuario_permiso" json:"idPermiso"`
}

// TableName sets the table name.
func (UserPermission) TableName() string {
	return "usuario_permisos"
}
