package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema-bodega/models"
)

var (
	// ErrStockInsuficiente se devuelve cuando en_bodega no alcanza para la
	// cantidad pedida. El préstamo no queda persistido.
	ErrStockInsuficiente = errors.New("no hay suficiente stock disponible")

	// ErrPrestamoNoActivo se devuelve al devolver sobre un préstamo
	// inexistente o ya completado.
	ErrPrestamoNoActivo = errors.New("préstamo no encontrado o ya devuelto")
)

// nuevoCodigo genera un código legible y único: PREFIJO-fecha-sufijo uuid.
// El timestamp solo no alcanza bajo concurrencia.
func nuevoCodigo(prefijo string) string {
	return fmt.Sprintf("%s-%s-%s",
		prefijo,
		time.Now().UTC().Format("20060102150405"),
		uuid.NewString()[:8])
}

type CreatePrestamoInput struct {
	HerramientaID uint
	SolicitanteID uint
	Cantidad      int
	FechaSalida   time.Time
	FechaRetorno  *time.Time
	Observaciones string
}

// CreatePrestamo inserta el préstamo y descuenta stock en una sola
// transacción. El guard de concurrencia es el UPDATE condicionado
// (en_bodega >= cantidad): si no afecta filas, todo se revierte.
func (r *Repo) CreatePrestamo(ctx context.Context, in CreatePrestamoInput) (*models.Prestamo, error) {
	p := &models.Prestamo{
		CodigoPrestamo: nuevoCodigo("PRES"),
		HerramientaID:  in.HerramientaID,
		SolicitanteID:  in.SolicitanteID,
		Cantidad:       in.Cantidad,
		FechaSalida:    in.FechaSalida,
		FechaRetorno:   in.FechaRetorno,
		Observaciones:  in.Observaciones,
		Estado:         models.PrestamoActivo,
	}

	err := r.db(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Herramienta{}).
			Where("id = ? AND en_bodega >= ?", in.HerramientaID, in.Cantidad).
			Updates(map[string]interface{}{
				"en_bodega": gorm.Expr("en_bodega - ?", in.Cantidad),
				"prestadas": gorm.Expr("prestadas + ?", in.Cantidad),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStockInsuficiente
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] préstamo %s creado (herramienta=%d cantidad=%d)", p.CodigoPrestamo, p.HerramientaID, p.Cantidad)
	return p, nil
}

type CreateDevolucionInput struct {
	PrestamoID        uint
	Cantidad          int
	FechaDevolucion   time.Time
	EstadoHerramienta string
	Observaciones     string
}

// CreateDevolucion registra la devolución, repone stock y cierra o reduce el
// préstamo, todo atómico. Devolver más de lo pendiente se acepta y completa
// el préstamo: es política del negocio, no un hueco de validación; los
// contadores se ajustan por la cantidad pedida igual que lo pendiente.
func (r *Repo) CreateDevolucion(ctx context.Context, in CreateDevolucionInput) (*models.Devolucion, error) {
	if in.EstadoHerramienta == "" {
		in.EstadoHerramienta = "Buena"
	}

	var d *models.Devolucion
	err := r.db(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Prestamo
		err := tx.First(&p, "id = ? AND estado = ?", in.PrestamoID, models.PrestamoActivo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPrestamoNoActivo
		}
		if err != nil {
			return err
		}

		d = &models.Devolucion{
			CodigoDevolucion:  nuevoCodigo("DEV"),
			PrestamoID:        p.ID,
			HerramientaID:     p.HerramientaID,
			Cantidad:          in.Cantidad,
			FechaDevolucion:   in.FechaDevolucion,
			DiasUso:           diasDeUso(p.FechaSalida, in.FechaDevolucion),
			EstadoHerramienta: in.EstadoHerramienta,
			Observaciones:     in.Observaciones,
		}
		if err := tx.Create(d).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Herramienta{}).
			Where("id = ?", p.HerramientaID).
			Updates(map[string]interface{}{
				"en_bodega": gorm.Expr("en_bodega + ?", in.Cantidad),
				"prestadas": gorm.Expr("prestadas - ?", in.Cantidad),
			}).Error; err != nil {
			return err
		}

		if in.Cantidad >= p.Cantidad {
			return tx.Model(&models.Prestamo{}).
				Where("id = ?", p.ID).
				Updates(map[string]interface{}{
					"estado":   models.PrestamoCompletado,
					"cantidad": 0,
				}).Error
		}
		return tx.Model(&models.Prestamo{}).
			Where("id = ?", p.ID).
			Update("cantidad", p.Cantidad-in.Cantidad).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] devolución %s registrada (préstamo=%d cantidad=%d)", d.CodigoDevolucion, d.PrestamoID, d.Cantidad)
	return d, nil
}

// diasDeUso calcula días enteros entre salida y devolución, nunca negativo.
func diasDeUso(salida, devolucion time.Time) int {
	dias := int(devolucion.Sub(salida).Hours() / 24)
	if dias < 0 {
		dias = 0
	}
	return dias
}

// Listados

// PrestamoRow agrega los datos de herramienta y solicitante al préstamo.
type PrestamoRow struct {
	models.Prestamo
	HerramientaNombre string `json:"herramienta_nombre"`
	HerramientaCodigo string `json:"herramienta_codigo"`
	SolicitanteNombre string `json:"solicitante_nombre"`
	Departamento      string `json:"departamento"`
}

func (r *Repo) ListPrestamos(ctx context.Context, soloActivos bool) ([]PrestamoRow, error) {
	q := r.db(ctx).
		Table(models.PrestamoTable+" p").
		Select(`p.*, h.nombre AS herramienta_nombre, h.codigo AS herramienta_codigo,
			s.nombre AS solicitante_nombre, s.departamento`).
		Joins("JOIN herramientas h ON h.id = p.herramienta_id").
		Joins("JOIN solicitantes s ON s.id = p.solicitante_id").
		Order("p.fecha_salida DESC")
	if soloActivos {
		q = q.Where("p.estado = ?", models.PrestamoActivo)
	}
	var rows []PrestamoRow
	err := q.Scan(&rows).Error
	return rows, err
}

// DevolucionRow reconstruye el historial que el esquema original exponía
// como vista.
type DevolucionRow struct {
	models.Devolucion
	CodigoPrestamo    string `json:"codigo_prestamo"`
	HerramientaNombre string `json:"herramienta_nombre"`
	SolicitanteNombre string `json:"solicitante_nombre"`
}

func (r *Repo) ListDevoluciones(ctx context.Context) ([]DevolucionRow, error) {
	var rows []DevolucionRow
	err := r.db(ctx).
		Table(models.DevolucionTable+" d").
		Select(`d.*, p.codigo_prestamo, h.nombre AS herramienta_nombre, s.nombre AS solicitante_nombre`).
		Joins("JOIN prestamos p ON p.id = d.prestamo_id").
		Joins("JOIN herramientas h ON h.id = d.herramienta_id").
		Joins("JOIN solicitantes s ON s.id = p.solicitante_id").
		Order("d.fecha_devolucion DESC").
		Scan(&rows).Error
	return rows, err
}
