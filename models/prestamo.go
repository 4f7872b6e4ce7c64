package models

import "time"

const (
	PrestamoActivo     = "Activo"
	PrestamoCompletado = "Completado"
)

// Prestamo registra la salida de una cantidad de herramienta. Cantidad es
// la cantidad pendiente de devolver: cada devolución la reduce, y al llegar
// a cero el préstamo pasa a Completado (sin transición de vuelta).
type Prestamo struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CodigoPrestamo string     `gorm:"column:codigo_prestamo;size:60;uniqueIndex;not null" json:"codigo_prestamo"`
	HerramientaID  uint       `gorm:"index;not null" json:"herramienta_id"`
	SolicitanteID  uint       `gorm:"index;not null" json:"solicitante_id"`
	Cantidad       int        `gorm:"not null" json:"cantidad"`
	FechaSalida    time.Time  `gorm:"column:fecha_salida;index;not null" json:"fecha_salida"`
	FechaRetorno   *time.Time `gorm:"column:fecha_retorno" json:"fecha_retorno,omitempty"`
	Observaciones  string     `gorm:"size:500" json:"observaciones,omitempty"`
	Estado         string     `gorm:"size:20;not null;default:'Activo'" json:"estado"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Prestamo) TableName() string { return PrestamoTable }

// Devolucion es de solo inserción: una vez creada no se modifica.
type Devolucion struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CodigoDevolucion  string    `gorm:"column:codigo_devolucion;size:60;uniqueIndex;not null" json:"codigo_devolucion"`
	PrestamoID        uint      `gorm:"index;not null" json:"prestamo_id"`
	HerramientaID     uint      `gorm:"index;not null" json:"herramienta_id"`
	Cantidad          int       `gorm:"not null" json:"cantidad"`
	FechaDevolucion   time.Time `gorm:"column:fecha_devolucion;index;not null" json:"fecha_devolucion"`
	DiasUso           int       `gorm:"column:dias_uso;not null" json:"dias_uso"`
	EstadoHerramienta string    `gorm:"column:estado_herramienta;size:30;not null;default:'Buena'" json:"estado_herramienta"`
	Observaciones     string    `gorm:"size:500" json:"observaciones,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Devolucion) TableName() string { return DevolucionTable }
