package models

// Category classifies products.
type Category struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"column:nombre;uniqueIndex;not null" json:"nombre"`
	Description string `gorm:"column:descripcion;default:''" json:"descripcion"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categorias"
}
