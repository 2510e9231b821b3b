package models

import (
	"time"
)

// User is an application account. Superadmins bypass permission checks and
// are protected from modification by non-superadmin actors.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"column:nombre_usuario;uniqueIndex;not null" json:"nombreUsuario"`
	FirstName    string    `gorm:"column:nombre;not null" json:"nombre"`
	LastNameP    string    `gorm:"column:apellido_p;default:''" json:"apellidoP"`
	LastNameM    string    `gorm:"column:apellido_m;default:''" json:"apellidoM"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"column:telefono;default:''" json:"telefono"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	RoleID       *uint     `gorm:"column:id_rol;index" json:"idRol"`
	Status       string    `gorm:"column:estatus;default:'Activo'" json:"estatus"`
	IsSuperadmin bool      `gorm:"column:is_superadmin;not null;default:false" json:"isSuperadmin"`
	Photo        string    `gorm:"column:foto;default:''" json:"foto"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Role *Role `gorm:"foreignKey:RoleID" json:"rol,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "usuarios"
}
