package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sistema-bodega/app"
	"sistema-bodega/auth"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// Login valida credenciales, emite el token y crea la fila de sesión.
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Usuario y contraseña son requeridos"})
		return
	}

	ctx := c.Request.Context()
	u, err := ac.Repo.FindUsuarioByLogin(ctx, in.Username)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusUnauthorized, app.H{"error": "Usuario o contraseña incorrectos"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "Error en el servidor"})
		return
	}

	if !auth.VerifyPassword(in.Password, u.PasswordHash) {
		c.JSON(http.StatusUnauthorized, app.H{"error": "Usuario o contraseña incorrectos"})
		return
	}

	token, exp, err := auth.GenerateToken([]byte(ac.Cfg.JWTSecret), u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "Error en el servidor"})
		return
	}

	if _, err := ac.Repo.CreateSesion(ctx, u.ID, token, c.ClientIP(), c.Request.UserAgent(), exp); err != nil {
		log.Printf("[ERROR] login: crear sesión para usuario %d: %v", u.ID, err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Error al crear sesión"})
		return
	}
	if err := ac.Repo.TouchUltimoAcceso(ctx, u.ID); err != nil {
		log.Printf("[WARN] login: touch último acceso: %v", err)
	}

	c.JSON(http.StatusOK, app.H{
		"message": "Login exitoso",
		"token":   token,
		"usuario": app.H{
			"id":              u.ID,
			"nombre_usuario":  u.NombreUsuario,
			"nombre_completo": u.NombreCompleto,
			"departamento":    u.Departamento,
			"rol":             u.Rol,
		},
	})
}

func (ac *AuthController) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{
		"valid":   true,
		"usuario": app.CurrentUsuario(c),
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString(app.CtxToken)
	if err := ac.Repo.InvalidateSesion(c.Request.Context(), token); err != nil {
		log.Printf("[ERROR] logout: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Error al cerrar sesión"})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Sesión cerrada exitosamente"})
}

func (ac *AuthController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"usuario": app.CurrentUsuario(c)})
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	var in struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Ambas contraseñas son requeridas"})
		return
	}
	if len(in.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, app.H{"error": "La nueva contraseña debe tener al menos 6 caracteres"})
		return
	}

	u := app.CurrentUsuario(c)
	ctx := c.Request.Context()
	actual, err := ac.Repo.FindUsuarioByID(ctx, u.UsuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "Error obteniendo usuario"})
		return
	}
	if !auth.VerifyPassword(in.CurrentPassword, actual.PasswordHash) {
		c.JSON(http.StatusUnauthorized, app.H{"error": "Contraseña actual incorrecta"})
		return
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "Error actualizando contraseña"})
		return
	}
	if err := ac.Repo.UpdatePasswordHash(ctx, u.UsuarioID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "Error actualizando contraseña"})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Contraseña actualizada exitosamente"})
}
