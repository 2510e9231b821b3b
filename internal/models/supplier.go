package models

// Supplier is a product provider.
type Supplier struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `gorm:"column:nombre;not null" json:"nombre"`
	RFC     string `gorm:"column:rfc;default:''" json:"rfc"`
	Phone   string `gorm:"column:telefono;default:''" json:"telefono"`
	Email   string `gorm:"column:email;default:''" json:"email"`
	Address string `gorm:"column:direccion;default:''" json:"direccion"`

	Contacts []SupplierContact `gorm:"foreignKey:SupplierID" json:"contactos,omitempty"`
}

// TableName sets the table name.
func (Supplier) TableName() string {
	return "proveedores"
}

// SupplierContact is a named contact person at a supplier.
type SupplierContact struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	SupplierID uint   `gorm:"column:id_proveedor;index;not null" json:"idProveedor"`
	Name       string `gorm:"column:nombre;not null" json:"nombre"`
	Phone      string `gorm:"column:telefono;default:''" json:"telefono"`
	Email      string `gorm:"column:email;default:''" json:"email"`
	Position   string `gorm:"column:puesto;default:''" json:"puesto"`
}

// TableName sets the table name.
func (SupplierContact) TableName() string {
	return "contactos"
}
