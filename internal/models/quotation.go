package models

import (
	"time"
)

// Quotation is a sales quote. Totals are always computed server-side from
// the item lines; client-sent totals are ignored.
type Quotation struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Folio          string    `gorm:"column:folio;uniqueIndex;not null" json:"folio"`
	Date           time.Time `gorm:"column:fecha;index" json:"fecha"`
	ClientID       uint      `gorm:"column:id_cliente;index;not null" json:"idCliente"`
	ContactID      *uint     `gorm:"column:id_contacto" json:"idContacto"`
	UserID         uint      `gorm:"column:id_usuario;index;not null" json:"idUsuario"`
	Status         string    `gorm:"column:estatus;index;default:'borrador'" json:"estatus"`
	DiscountPct    Money     `gorm:"column:descuento_porcentaje;type:decimal(20,2);not null" json:"descuentoPorcentaje"`
	TaxEnabled     bool      `gorm:"column:iva_habilitado;not null;default:true" json:"ivaHabilitado"`
	TaxPct         Money     `gorm:"column:iva_porcentaje;type:decimal(20,2);not null" json:"ivaPorcentaje"`
	Subtotal       Money     `gorm:"column:subtotal;type:decimal(20,2);not null" json:"subtotal"`
	DiscountAmount Money     `gorm:"column:descuento_importe;type:decimal(20,2);not null" json:"descuentoImporte"`
	TaxAmount      Money     `gorm:"column:iva_importe;type:decimal(20,2);not null" json:"ivaImporte"`
	Total          Money     `gorm:"column:total;type:decimal(20,2);not null" json:"total"`
	Evidence       string    `gorm:"column:evidencia;default:''" json:"evidencia"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Client *Client         `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`
	Items  []QuotationItem `gorm:"foreignKey:QuotationID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Quotation) TableName() string {
	return "cotizaciones"
}

// QuotationItem is one quoted line. Product fields are denormalized so the
// quote keeps its content if the product later changes.
type QuotationItem struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	QuotationID  uint   `gorm:"column:id_cotizacion;index;not null" json:"idCotizacion"`
	ProductID    *uint  `gorm:"column:id_producto;index" json:"idProducto"`
	Name         string `gorm:"column:nombre;not null" json:"nombre"`
	Brand        string `gorm:"column:marca;default:''" json:"marca"`
	Model        string `gorm:"column:modelo;default:''" json:"modelo"`
	SerialNumber string `gorm:"column:no_serie;default:''" json:"noSerie"`
	UnitPrice    Money  `gorm:"column:precio_unitario;type:decimal(20,2);not null" json:"precioUnitario"`
	Quantity     int    `gorm:"column:cantidad;not null;default:1" json:"cantidad"`
}

// TableName sets the table name.
func (QuotationItem) TableName() string {
	return "cotizacion_items"
}
