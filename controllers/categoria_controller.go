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

type CategoriaController struct{ *Srv }

func NewCategoriaController(s *Srv) *CategoriaController { return &CategoriaController{Srv: s} }

func (cc *CategoriaController) List(c *gin.Context) {
	cs, err := cc.Repo.ListCategorias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (cc *CategoriaController) Create(c *gin.Context) {
	var in struct {
		Nombre string `json:"nombre" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Nombre de categoría requerido"})
		return
	}
	cat := &models.Categoria{Nombre: in.Nombre}
	if err := cc.Repo.CreateCategoria(c.Request.Context(), cat); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"id": cat.ID, "message": "Categoría creada exitosamente"})
}

func (cc *CategoriaController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Nombre string `json:"nombre" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Nombre requerido"})
		return
	}
	err := cc.Repo.UpdateCategoria(c.Request.Context(), id, in.Nombre)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, app.H{"error": "Categoría no encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Categoría actualizada exitosamente"})
}

func (cc *CategoriaController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := cc.Repo.DeleteCategoria(c.Request.Context(), id)
	switch {
	case errors.Is(err, db.ErrCategoriaEnUso):
		c.JSON(http.StatusBadRequest, app.H{"error": "No se puede eliminar: categoría con herramientas asociadas"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "Categoría no encontrada"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, app.H{"message": "Categoría eliminada exitosamente"})
	}
}
