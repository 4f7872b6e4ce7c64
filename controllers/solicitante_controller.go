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

type SolicitanteController struct{ *Srv }

func NewSolicitanteController(s *Srv) *SolicitanteController {
	return &SolicitanteController{Srv: s}
}

func (sc *SolicitanteController) List(c *gin.Context) {
	ss, err := sc.Repo.ListSolicitantes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ss)
}

func (sc *SolicitanteController) Create(c *gin.Context) {
	var in struct {
		Nombre       string `json:"nombre" binding:"required"`
		Departamento string `json:"departamento" binding:"required"`
		Telefono     string `json:"telefono"`
		Email        string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Nombre y departamento son requeridos"})
		return
	}
	s := &models.Solicitante{
		Nombre:       in.Nombre,
		Departamento: in.Departamento,
		Telefono:     in.Telefono,
		Email:        in.Email,
	}
	if err := sc.Repo.CreateSolicitante(c.Request.Context(), s); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"id": s.ID, "message": "Solicitante creado exitosamente"})
}

// Register es el alta de autoservicio de solicitantes.
func (sc *SolicitanteController) Register(c *gin.Context) {
	var in struct {
		Nombre       string `json:"nombre" binding:"required"`
		Departamento string `json:"departamento" binding:"required"`
		Telefono     string `json:"telefono"`
		Email        string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Faltan campos requeridos"})
		return
	}
	s := &models.Solicitante{
		Nombre:       in.Nombre,
		Departamento: in.Departamento,
		Telefono:     in.Telefono,
		Email:        in.Email,
	}
	err := sc.Repo.RegisterSolicitante(c.Request.Context(), s)
	if errors.Is(err, db.ErrSolicitanteDuplicado) {
		c.JSON(http.StatusBadRequest, app.H{"error": "El usuario ya existe"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{
		"id":      s.ID,
		"message": "Usuario registrado exitosamente",
		"usuario": s,
	})
}

func (sc *SolicitanteController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := sc.Repo.DeleteSolicitante(c.Request.Context(), id)
	switch {
	case errors.Is(err, db.ErrSolicitanteEnUso):
		c.JSON(http.StatusBadRequest, app.H{"error": "No se puede eliminar: solicitante con préstamos activos"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "Solicitante no encontrado"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, app.H{"message": "Solicitante eliminado exitosamente"})
	}
}
