package models

import (
	"time"
)

// Product is a sellable catalog item.
type Product struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"column:nombre;index;not null" json:"nombre"`
	Brand        string    `gorm:"column:marca;default:''" json:"marca"`
	Model        string    `gorm:"column:modelo;default:''" json:"modelo"`
	SerialNumber string    `gorm:"column:no_serie;default:''" json:"noSerie"`
	Description  string    `gorm:"column:descripcion;default:''" json:"descripcion"`
	CategoryID   *uint     `gorm:"column:id_categoria;index" json:"idCategoria"`
	SupplierID   *uint     `gorm:"column:id_proveedor;index" json:"idProveedor"`
	Price        Money     `gorm:"column:precio;type:decimal(20,2);not null" json:"precio"`
	Stock        int       `gorm:"column:existencias;not null;default:0" json:"existencias"`
	Photo        string    `gorm:"column:foto;default:''" json:"foto"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"categoria,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"proveedor,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "productos"
}
