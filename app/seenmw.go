package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sistema-bodega/db"
)

// throttle limita una acción a una vez por intervalo usando SETNX. Sin
// cliente Redis siempre permite, lo que degrada a ejecutar en cada petición.
type throttle struct {
	rdb   *redis.Client
	key   string
	every time.Duration
}

func newThrottle(rdb *redis.Client, key string, every time.Duration) *throttle {
	return &throttle{rdb: rdb, key: key, every: every}
}

func (t *throttle) allow(ctx context.Context) bool {
	if t.rdb == nil {
		return true
	}
	ok, err := t.rdb.SetNX(ctx, t.key, "1", t.every).Result()
	if err != nil {
		// Redis caído no bloquea la petición.
		return true
	}
	return ok
}

// TouchUltimoAcceso actualiza fecha_ultimo_acceso del usuario autenticado,
// como mucho una vez por intervalo por usuario.
func TouchUltimoAcceso(repo *db.Repo, rdb *redis.Client, every time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUsuario(c)
		if u == nil {
			c.Next()
			return
		}
		t := newThrottle(rdb, fmt.Sprintf("usuario:acceso:%d", u.UsuarioID), every)
		if t.allow(c.Request.Context()) {
			_ = repo.TouchUltimoAcceso(c.Request.Context(), u.UsuarioID) // no bloquea la petición
		}
		c.Next()
	}
}
