package db

import (
	"context"
	"time"

	"sistema-bodega/models"
)

// SesionActiva junta la fila de sesión con el perfil del usuario, que es lo
// que el middleware cuelga del contexto de la petición.
type SesionActiva struct {
	SesionID       uint       `json:"-"`
	UsuarioID      uint       `json:"id"`
	NombreUsuario  string     `json:"nombre_usuario"`
	NombreCompleto string     `json:"nombre_completo"`
	Departamento   string     `json:"departamento"`
	Rol            models.Rol `json:"rol"`
}

func (r *Repo) CreateSesion(ctx context.Context, usuarioID uint, token, ip, userAgent string, expiracion time.Time) (*models.Sesion, error) {
	s := &models.Sesion{
		UsuarioID:       usuarioID,
		Token:           token,
		FechaExpiracion: expiracion,
		IPAddress:       ip,
		UserAgent:       userAgent,
		Activa:          true,
	}
	if err := r.db(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// VerifySesion devuelve la sesión solo si está activa y no expirada.
func (r *Repo) VerifySesion(ctx context.Context, token string) (*SesionActiva, error) {
	var row SesionActiva
	err := r.db(ctx).
		Table("sesiones s").
		Select(`s.id AS sesion_id, s.usuario_id,
			u.nombre_usuario, u.nombre_completo, u.departamento, u.rol`).
		Joins("JOIN usuarios u ON u.id = s.usuario_id").
		Where("s.token = ? AND s.activa = ? AND s.fecha_expiracion > ?", token, true, time.Now().UTC()).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.UsuarioID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *Repo) InvalidateSesion(ctx context.Context, token string) error {
	return r.db(ctx).Model(&models.Sesion{}).
		Where("token = ?", token).
		Update("activa", false).Error
}

// SweepSesionesExpiradas desactiva en bloque las filas vencidas. Se invoca
// antes de cada petición autenticada, con throttling vía Redis.
func (r *Repo) SweepSesionesExpiradas(ctx context.Context) (int64, error) {
	res := r.db(ctx).Model(&models.Sesion{}).
		Where("fecha_expiracion <= ? AND activa = ?", time.Now().UTC(), true).
		Update("activa", false)
	return res.RowsAffected, res.Error
}
