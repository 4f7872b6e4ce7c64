package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sistema-bodega/models"
)

var (
	// ErrCategoriaEnUso se devuelve al intentar borrar una categoría con
	// herramientas asociadas.
	ErrCategoriaEnUso = errors.New("categoría con herramientas asociadas")

	// ErrHerramientaEnUso se devuelve al intentar borrar una herramienta con
	// préstamos activos.
	ErrHerramientaEnUso = errors.New("herramienta con préstamos activos")

	// ErrSolicitanteEnUso se devuelve al intentar borrar un solicitante con
	// préstamos activos.
	ErrSolicitanteEnUso = errors.New("solicitante con préstamos activos")

	// ErrSolicitanteDuplicado se devuelve en el registro cuando el nombre o
	// email ya existen.
	ErrSolicitanteDuplicado = errors.New("el usuario ya existe")
)

// Categorías

func (r *Repo) CreateCategoria(ctx context.Context, c *models.Categoria) error {
	return r.db(ctx).Create(c).Error
}

func (r *Repo) ListCategorias(ctx context.Context) ([]models.Categoria, error) {
	var cs []models.Categoria
	err := r.db(ctx).Order("nombre").Find(&cs).Error
	return cs, err
}

func (r *Repo) UpdateCategoria(ctx context.Context, id uint, nombre string) error {
	res := r.db(ctx).Model(&models.Categoria{}).
		Where("id = ?", id).
		Update("nombre", nombre)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) DeleteCategoria(ctx context.Context, id uint) error {
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Herramienta{}).
			Where("categoria_id = ?", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoriaEnUso
		}
		res := tx.Delete(&models.Categoria{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Herramientas

// HerramientaRow agrega el nombre de la categoría al listado.
type HerramientaRow struct {
	models.Herramienta
	CategoriaNombre string `json:"categoria_nombre"`
}

func (r *Repo) ListHerramientas(ctx context.Context) ([]HerramientaRow, error) {
	var rows []HerramientaRow
	err := r.db(ctx).
		Table(models.HerramientaTable+" h").
		Select("h.*, c.nombre AS categoria_nombre").
		Joins("LEFT JOIN categorias c ON c.id = h.categoria_id").
		Order("c.nombre, h.nombre").
		Scan(&rows).Error
	return rows, err
}

func (r *Repo) FindHerramientaByID(ctx context.Context, id uint) (*HerramientaRow, error) {
	var row HerramientaRow
	err := r.db(ctx).
		Table(models.HerramientaTable+" h").
		Select("h.*, c.nombre AS categoria_nombre").
		Joins("LEFT JOIN categorias c ON c.id = h.categoria_id").
		Where("h.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// CreateHerramienta deja todo el stock en bodega.
func (r *Repo) CreateHerramienta(ctx context.Context, h *models.Herramienta) error {
	h.EnBodega = h.StockTotal
	h.Prestadas = 0
	if h.Estado == "" {
		h.Estado = "Activo"
	}
	return r.db(ctx).Create(h).Error
}

type UpdateHerramientaInput struct {
	Codigo      string
	Nombre      string
	CategoriaID uint
	StockTotal  int
	Estado      string

	// Nil significa "no enviado": en ese caso en_bodega se reconcilia
	// contra el nuevo stock_total y prestadas se conserva.
	EnBodega  *int
	Prestadas *int
}

func (r *Repo) UpdateHerramienta(ctx context.Context, id uint, in UpdateHerramientaInput) error {
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		var actual models.Herramienta
		if err := tx.First(&actual, "id = ?", id).Error; err != nil {
			return err
		}

		enBodega := actual.EnBodega
		if in.EnBodega != nil {
			enBodega = *in.EnBodega
		} else if in.StockTotal < enBodega {
			// El caller redujo el stock sin decir cuánto queda en bodega:
			// recortamos al nuevo total.
			enBodega = in.StockTotal
		}
		prestadas := actual.Prestadas
		if in.Prestadas != nil {
			prestadas = *in.Prestadas
		}

		return tx.Model(&models.Herramienta{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"codigo":       in.Codigo,
				"nombre":       in.Nombre,
				"categoria_id": in.CategoriaID,
				"stock_total":  in.StockTotal,
				"en_bodega":    enBodega,
				"prestadas":    prestadas,
				"estado":       in.Estado,
			}).Error
	})
}

func (r *Repo) DeleteHerramienta(ctx context.Context, id uint) error {
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Prestamo{}).
			Where("herramienta_id = ? AND estado = ?", id, models.PrestamoActivo).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrHerramientaEnUso
		}
		res := tx.Delete(&models.Herramienta{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Solicitantes

func (r *Repo) CreateSolicitante(ctx context.Context, s *models.Solicitante) error {
	return r.db(ctx).Create(s).Error
}

// RegisterSolicitante es el alta de autoservicio: rechaza duplicados por
// nombre o email antes de insertar.
func (r *Repo) RegisterSolicitante(ctx context.Context, s *models.Solicitante) error {
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		q := tx.Model(&models.Solicitante{}).Where("nombre = ?", s.Nombre)
		if s.Email != "" {
			q = tx.Model(&models.Solicitante{}).Where("nombre = ? OR email = ?", s.Nombre, s.Email)
		}
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrSolicitanteDuplicado
		}
		return tx.Create(s).Error
	})
}

func (r *Repo) ListSolicitantes(ctx context.Context) ([]models.Solicitante, error) {
	var ss []models.Solicitante
	err := r.db(ctx).Order("nombre").Find(&ss).Error
	return ss, err
}

func (r *Repo) DeleteSolicitante(ctx context.Context, id uint) error {
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Prestamo{}).
			Where("solicitante_id = ? AND estado = ?", id, models.PrestamoActivo).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrSolicitanteEnUso
		}
		res := tx.Delete(&models.Solicitante{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
