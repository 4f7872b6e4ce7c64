package models

import "time"

// Sesion refleja en base de datos cada token emitido. El middleware de
// autenticación exige fila activa y no expirada además de la firma JWT,
// de modo que un logout revoca el acceso de inmediato.
type Sesion struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UsuarioID       uint      `gorm:"index;not null" json:"usuario_id"`
	Token           string    `gorm:"size:512;uniqueIndex;not null" json:"-"`
	FechaExpiracion time.Time `gorm:"column:fecha_expiracion;index;not null" json:"fecha_expiracion"`
	IPAddress       string    `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	UserAgent       string    `gorm:"size:255" json:"user_agent,omitempty"`
	Activa          bool      `gorm:"not null;default:true" json:"activa"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Sesion) TableName() string { return "sesiones" }
