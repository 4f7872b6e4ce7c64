package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sistema-bodega/app"
	"sistema-bodega/db"
	"sistema-bodega/models"
)

type HerramientaController struct{ *Srv }

func NewHerramientaController(s *Srv) *HerramientaController {
	return &HerramientaController{Srv: s}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "id inválido"})
		return 0, false
	}
	return uint(id), true
}

func (hc *HerramientaController) List(c *gin.Context) {
	rows, err := hc.Repo.ListHerramientas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (hc *HerramientaController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	row, err := hc.Repo.FindHerramientaByID(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, app.H{"error": "Herramienta no encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, row)
}

func (hc *HerramientaController) Create(c *gin.Context) {
	var in struct {
		Codigo      string `json:"codigo" binding:"required"`
		Nombre      string `json:"nombre" binding:"required"`
		CategoriaID uint   `json:"categoria_id" binding:"required"`
		StockTotal  int    `json:"stock_total" binding:"required"`
		Estado      string `json:"estado"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Faltan campos requeridos"})
		return
	}

	h := &models.Herramienta{
		Codigo:      in.Codigo,
		Nombre:      in.Nombre,
		CategoriaID: in.CategoriaID,
		StockTotal:  in.StockTotal,
		Estado:      in.Estado,
	}
	if err := hc.Repo.CreateHerramienta(c.Request.Context(), h); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"id": h.ID, "message": "Herramienta creada exitosamente"})
}

func (hc *HerramientaController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Codigo      string `json:"codigo" binding:"required"`
		Nombre      string `json:"nombre" binding:"required"`
		CategoriaID uint   `json:"categoria_id" binding:"required"`
		StockTotal  int    `json:"stock_total" binding:"required"`
		EnBodega    *int   `json:"en_bodega"`
		Prestadas   *int   `json:"prestadas"`
		Estado      string `json:"estado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Faltan campos requeridos"})
		return
	}

	err := hc.Repo.UpdateHerramienta(c.Request.Context(), id, db.UpdateHerramientaInput{
		Codigo:      in.Codigo,
		Nombre:      in.Nombre,
		CategoriaID: in.CategoriaID,
		StockTotal:  in.StockTotal,
		EnBodega:    in.EnBodega,
		Prestadas:   in.Prestadas,
		Estado:      in.Estado,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, app.H{"error": "Herramienta no encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Herramienta actualizada exitosamente"})
}

func (hc *HerramientaController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := hc.Repo.DeleteHerramienta(c.Request.Context(), id)
	switch {
	case errors.Is(err, db.ErrHerramientaEnUso):
		c.JSON(http.StatusBadRequest, app.H{"error": "No se puede eliminar: herramienta con préstamos activos"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "Herramienta no encontrada"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, app.H{"message": "Herramienta eliminada exitosamente"})
	}
}
