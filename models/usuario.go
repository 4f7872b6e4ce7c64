package models

import "time"

// Rol enumera los roles del sistema. La autorización por ruta se hace
// contra un conjunto de roles permitidos, nunca contra strings sueltos.
type Rol string

const (
	RolAdmin      Rol = "admin"
	RolSupervisor Rol = "supervisor"
	RolUsuario    Rol = "usuario"
)

func (r Rol) Valid() bool {
	switch r {
	case RolAdmin, RolSupervisor, RolUsuario:
		return true
	}
	return false
}

// In reports whether r is one of the allowed roles.
func (r Rol) In(allowed ...Rol) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

type Usuario struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	NombreUsuario  string `gorm:"column:nombre_usuario;size:100;uniqueIndex;not null" json:"nombre_usuario"`
	Email          string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash   string `gorm:"column:password_hash;size:255;not null" json:"-"`
	NombreCompleto string `gorm:"column:nombre_completo;size:255;not null" json:"nombre_completo"`
	Departamento   string `gorm:"size:100" json:"departamento"`
	Rol            Rol    `gorm:"size:20;not null;default:'usuario'" json:"rol"`
	Activo         bool   `gorm:"not null;default:true" json:"activo"`

	FechaUltimoAcceso  *time.Time `gorm:"column:fecha_ultimo_acceso" json:"fecha_ultimo_acceso,omitempty"`
	FechaCreacion      time.Time  `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	FechaActualizacion time.Time  `gorm:"column:fecha_actualizacion;autoUpdateTime" json:"fecha_actualizacion"`
}

func (Usuario) TableName() string { return "usuarios" }
