package db

import (
	"context"

	"sistema-bodega/models"
)

// ResumenRow es el resumen de inventario con porcentaje disponible.
type ResumenRow struct {
	ID                   uint    `json:"id"`
	Codigo               string  `json:"codigo"`
	Nombre               string  `json:"nombre"`
	Categoria            string  `json:"categoria"`
	StockTotal           int     `json:"stock_total"`
	EnBodega             int     `json:"en_bodega"`
	Prestadas            int     `json:"prestadas"`
	Estado               string  `json:"estado"`
	PorcentajeDisponible float64 `json:"porcentaje_disponible"`
}

func (r *Repo) ResumenInventario(ctx context.Context) ([]ResumenRow, error) {
	var rows []ResumenRow
	err := r.db(ctx).
		Table(models.HerramientaTable+" h").
		Select(`h.id, h.codigo, h.nombre, c.nombre AS categoria,
			h.stock_total, h.en_bodega, h.prestadas, h.estado,
			CASE WHEN h.stock_total > 0
			     THEN ROUND(h.en_bodega * 100.0 / h.stock_total, 1)
			     ELSE 0 END AS porcentaje_disponible`).
		Joins("LEFT JOIN categorias c ON c.id = h.categoria_id").
		Order("c.nombre, h.nombre").
		Scan(&rows).Error
	return rows, err
}

type Estadisticas struct {
	TotalHerramientas     int64 `json:"total_herramientas"`
	HerramientasActivas   int64 `json:"herramientas_activas"`
	HerramientasPrestadas int64 `json:"herramientas_prestadas"`
	PrestamosActivos      int64 `json:"prestamos_activos"`
	TotalDevoluciones     int64 `json:"total_devoluciones"`
}

func (r *Repo) Estadisticas(ctx context.Context) (*Estadisticas, error) {
	var st Estadisticas
	gdb := r.db(ctx)

	if err := gdb.Model(&models.Herramienta{}).Count(&st.TotalHerramientas).Error; err != nil {
		return nil, err
	}
	if err := gdb.Model(&models.Herramienta{}).
		Where("estado = ?", "Activo").
		Count(&st.HerramientasActivas).Error; err != nil {
		return nil, err
	}
	if err := gdb.Model(&models.Herramienta{}).
		Select("COALESCE(SUM(prestadas), 0)").
		Scan(&st.HerramientasPrestadas).Error; err != nil {
		return nil, err
	}
	if err := gdb.Model(&models.Prestamo{}).
		Where("estado = ?", models.PrestamoActivo).
		Count(&st.PrestamosActivos).Error; err != nil {
		return nil, err
	}
	if err := gdb.Model(&models.Devolucion{}).Count(&st.TotalDevoluciones).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
