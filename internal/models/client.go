package models

import (
	"time"
)

// Client covers both personas and empresas; Type discriminates.
type Client struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Type      string    `gorm:"column:tipo_cliente;index;not null" json:"tipoCliente"`
	Name      string    `gorm:"column:nombre;not null" json:"nombre"`
	LastNameP string    `gorm:"column:apellido_p;default:''" json:"apellidoP"`
	LastNameM string    `gorm:"column:apellido_m;default:''" json:"apellidoM"`
	RFC       string    `gorm:"column:rfc;default:''" json:"rfc"`
	Phone     string    `gorm:"column:telefono;default:''" json:"telefono"`
	Email     string    `gorm:"column:email;default:''" json:"email"`
	Address   string    `gorm:"column:direccion;default:''" json:"direccion"`
	Status    string    `gorm:"column:estatus;default:'Activo'" json:"estatus"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Addresses []ClientAddress `gorm:"foreignKey:ClientID" json:"direcciones,omitempty"`
}

// TableName sets the table name.
func (Client) TableName() string {
	return "clientes"
}

// ClientAddress is an additional delivery or billing address of a client.
type ClientAddress struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	ClientID uint   `gorm:"column:id_cliente;index;not null" json:"idCliente"`
	Street   string `gorm:"column:calle;default:''" json:"calle"`
	City     string `gorm:"column:ciudad;default:''" json:"ciudad"`
	State    string `gorm:"column:estado;default:''" json:"estado"`
	ZipCode  string `gorm:"column:cp;default:''" json:"cp"`
	Country  string `gorm:"column:pais;default:''" json:"pais"`
}

// TableName sets the table name.
func (ClientAddress) TableName() string {
	return "direcciones"
}
