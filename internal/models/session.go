package models

import (
	"time"
)

// Session is one login record. A session is active while LogoutAt is null;
// logout closes it by stamping LogoutAt.
type Session struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	UserID    uint       `gorm:"column:id_usuario;index;not null" json:"idUsuario"`
	IP        string     `gorm:"column:direccion_ip;default:''" json:"direccionIp"`
	UserAgent string     `gorm:"column:user_agent;default:''" json:"userAgent"`
	Token     string     `gorm:"column:token_sesion;uniqueIndex;not null" json:"-"`
	LoginAt   time.Time  `gorm:"column:fecha_login;index" json:"fechaLogin"`
	LogoutAt  *time.Time `gorm:"column:fecha_logout;index" json:"fechaLogout"`
}

// TableName sets the table name.
func (Session) TableName() string {
	return "historico_sesiones"
}
