package models

import "time"

const (
	HerramientaTable = "herramientas"
	PrestamoTable    = "prestamos"
	DevolucionTable  = "devoluciones"
)

type Categoria struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;uniqueIndex;not null" json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Categoria) TableName() string { return "categorias" }

// Herramienta divide el stock total entre bodega y prestadas.
// Invariante en reposo: en_bodega + prestadas == stock_total.
type Herramienta struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Codigo      string `gorm:"size:50;uniqueIndex;not null" json:"codigo"`
	Nombre      string `gorm:"size:200;not null" json:"nombre"`
	CategoriaID uint   `gorm:"index;not null" json:"categoria_id"`
	StockTotal  int    `gorm:"column:stock_total;not null" json:"stock_total"`
	EnBodega    int    `gorm:"column:en_bodega;not null" json:"en_bodega"`
	Prestadas   int    `gorm:"not null;default:0" json:"prestadas"`
	Estado      string `gorm:"size:20;not null;default:'Activo'" json:"estado"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Herramienta) TableName() string { return HerramientaTable }

type Solicitante struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nombre       string    `gorm:"size:200;not null" json:"nombre"`
	Departamento string    `gorm:"size:100;not null" json:"departamento"`
	Telefono     string    `gorm:"size:30" json:"telefono,omitempty"`
	Email        string    `gorm:"size:255" json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Solicitante) TableName() string { return "solicitantes" }
