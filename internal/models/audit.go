package models

import (
	"time"
)

// AuditRecord is one append-only audit row. Snapshots are serialized JSON;
// nil means the side does not apply (no before on create, no after on delete).
type AuditRecord struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     *uint     `gorm:"column:id_usuario;index" json:"idUsuario"`
	Action     string    `gorm:"column:accion;index;not null" json:"accion"`
	Table      string    `gorm:"column:tabla;index;not null" json:"tabla"`
	RecordID   *uint     `gorm:"column:id_registro;index" json:"idRegistro"`
	OldValues  *string   `gorm:"column:valores_anteriores;type:text" json:"valoresAnteriores"`
	NewValues  *string   `gorm:"column:valores_nuevos;type:text" json:"valoresNuevos"`
	OccurredAt time.Time `gorm:"column:fecha_accion;index" json:"fechaAccion"`
}

// TableName sets the table name.
func (AuditRecord) TableName() string {
	return "auditoria"
}
