package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sistema-bodega/app"
	"sistema-bodega/db"
	"sistema-bodega/models"
)

type UsuarioController struct{ *Srv }

func NewUsuarioController(s *Srv) *UsuarioController { return &UsuarioController{Srv: s} }

func (uc *UsuarioController) List(c *gin.Context) {
	us, err := uc.Repo.ListUsuarios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, us)
}

func (uc *UsuarioController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	u, err := uc.Repo.FindUsuarioByID(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, app.H{"error": "Usuario no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (uc *UsuarioController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		NombreCompleto string     `json:"nombre_completo" binding:"required"`
		Email          string     `json:"email" binding:"required"`
		Departamento   string     `json:"departamento"`
		Rol            models.Rol `json:"rol" binding:"required"`
		Activo         bool       `json:"activo"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Faltan campos requeridos"})
		return
	}
	if !in.Rol.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "Rol inválido"})
		return
	}

	// Un admin no puede cambiarse su propio rol.
	actor := app.CurrentUsuario(c)
	if actor != nil && actor.UsuarioID == id && in.Rol != actor.Rol {
		c.JSON(http.StatusBadRequest, app.H{"error": "No puedes cambiar tu propio rol"})
		return
	}

	err := uc.Repo.UpdateUsuario(c.Request.Context(), id, db.UpdateUsuarioInput{
		NombreCompleto: in.NombreCompleto,
		Email:          in.Email,
		Departamento:   in.Departamento,
		Rol:            in.Rol,
		Activo:         in.Activo,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, app.H{"error": "Usuario no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Usuario actualizado exitosamente"})
}

func (uc *UsuarioController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	actor := app.CurrentUsuario(c)
	if actor != nil && actor.UsuarioID == id {
		c.JSON(http.StatusBadRequest, app.H{"error": "No puedes eliminar tu propia cuenta"})
		return
	}

	err := uc.Repo.DeleteUsuario(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, app.H{"error": "Usuario no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Usuario eliminado exitosamente"})
}
