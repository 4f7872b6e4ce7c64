package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sistema-bodega/auth"
	"sistema-bodega/db"
	"sistema-bodega/models"
)

const (
	// CtxUsuario guarda la *db.SesionActiva de la petición autenticada.
	CtxUsuario = "usuario"
	// CtxToken guarda el bearer token crudo (lo necesita el logout).
	CtxToken = "token"

	loginRedirect = "/login.html"
)

// Authenticate es la variante estricta: además de la firma JWT exige fila de
// sesión activa y no expirada, de modo que logout y desactivación de cuenta
// revocan el acceso de inmediato. Antes de cada verificación barre las
// sesiones vencidas, con throttling vía Redis para no escribir en cada hit.
func Authenticate(repo *db.Repo, rdb *redis.Client, secret []byte) gin.HandlerFunc {
	sweep := newThrottle(rdb, "sesiones:sweep", time.Minute)
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sweep.allow(ctx) {
			if _, err := repo.SweepSesionesExpiradas(ctx); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, H{"error": "Error en autenticación"})
				return
			}
		}

		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{
				"error":    "Token no proporcionado",
				"redirect": loginRedirect,
			})
			return
		}

		if _, err := auth.ParseToken(secret, token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{
				"error":    "Token inválido o expirado",
				"redirect": loginRedirect,
			})
			return
		}

		sesion, err := repo.VerifySesion(ctx, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, H{"error": "Error en autenticación"})
			return
		}
		if sesion == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{
				"error":    "Sesión no válida o expirada",
				"redirect": loginRedirect,
			})
			return
		}

		c.Set(CtxUsuario, sesion)
		c.Set(CtxToken, token)
		c.Next()
	}
}

// Authorize deja pasar solo a los roles del conjunto permitido. Un conjunto
// vacío equivale a "cualquier usuario autenticado".
func Authorize(allowed ...models.Rol) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUsuario(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "No autenticado"})
			return
		}
		if len(allowed) > 0 && !u.Rol.In(allowed...) {
			c.AbortWithStatusJSON(http.StatusForbidden, H{
				"error": "No tienes permisos para realizar esta acción",
			})
			return
		}
		c.Next()
	}
}

// CurrentUsuario devuelve la sesión colgada por Authenticate, o nil.
func CurrentUsuario(c *gin.Context) *db.SesionActiva {
	v, ok := c.Get(CtxUsuario)
	if !ok {
		return nil
	}
	u, _ := v.(*db.SesionActiva)
	return u
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
