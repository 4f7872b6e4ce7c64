package db

import (
	"context"

	"gorm.io/gorm"

	"sistema-bodega/models"
)

type Repo struct{ store *Store }

func NewRepo(store *Store) *Repo { return &Repo{store: store} }

func (r *Repo) db(ctx context.Context) *gorm.DB {
	return r.store.DB().WithContext(ctx)
}

// Usuarios

func (r *Repo) CreateUsuario(ctx context.Context, u *models.Usuario) error {
	return r.db(ctx).Create(u).Error
}

func (r *Repo) FindUsuarioByID(ctx context.Context, id uint) (*models.Usuario, error) {
	var u models.Usuario
	if err := r.db(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUsuarioByLogin busca por nombre de usuario o email, solo cuentas activas.
func (r *Repo) FindUsuarioByLogin(ctx context.Context, login string) (*models.Usuario, error) {
	var u models.Usuario
	err := r.db(ctx).
		Where("(nombre_usuario = ? OR email = ?) AND activo = ?", login, login, true).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) ListUsuarios(ctx context.Context) ([]models.Usuario, error) {
	var us []models.Usuario
	err := r.db(ctx).Order("nombre_completo").Find(&us).Error
	return us, err
}

func (r *Repo) CountUsuarios(ctx context.Context) (int64, error) {
	var n int64
	err := r.db(ctx).Model(&models.Usuario{}).Count(&n).Error
	return n, err
}

type UpdateUsuarioInput struct {
	NombreCompleto string
	Email          string
	Departamento   string
	Rol            models.Rol
	Activo         bool
}

func (r *Repo) UpdateUsuario(ctx context.Context, id uint, in UpdateUsuarioInput) error {
	res := r.db(ctx).Model(&models.Usuario{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"nombre_completo": in.NombreCompleto,
			"email":           in.Email,
			"departamento":    in.Departamento,
			"rol":             in.Rol,
			"activo":          in.Activo,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	return r.db(ctx).Model(&models.Usuario{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// DeleteUsuario elimina la cuenta y desactiva todas sus sesiones, para que
// un token todavía vigente no siga entrando.
func (r *Repo) DeleteUsuario(ctx context.Context, id uint) error {
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Sesion{}).
			Where("usuario_id = ?", id).
			Update("activa", false).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Usuario{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *Repo) TouchUltimoAcceso(ctx context.Context, id uint) error {
	return r.db(ctx).Model(&models.Usuario{}).
		Where("id = ?", id).
		Update("fecha_ultimo_acceso", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
