package models

// Role groups permissions for assignment to users.
type Role struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"column:nombre_rol;uniqueIndex;not null" json:"nombreRol"`
	Description string `gorm:"column:descripcion;default:''" json:"descripcion"`
}

// TableName sets the table name.
func (Role) TableName() string {
	return "roles"
}
