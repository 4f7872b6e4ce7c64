package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sistema-bodega/app"
	"sistema-bodega/db"
)

type PrestamoController struct{ *Srv }

func NewPrestamoController(s *Srv) *PrestamoController { return &PrestamoController{Srv: s} }

func (pc *PrestamoController) List(c *gin.Context) {
	rows, err := pc.Repo.ListPrestamos(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (pc *PrestamoController) ListActivos(c *gin.Context) {
	rows, err := pc.Repo.ListPrestamos(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (pc *PrestamoController) Create(c *gin.Context) {
	var in struct {
		HerramientaID uint   `json:"herramienta_id" binding:"required"`
		SolicitanteID uint   `json:"solicitante_id" binding:"required"`
		Cantidad      int    `json:"cantidad" binding:"required,gt=0"`
		FechaSalida   string `json:"fecha_salida" binding:"required"`
		FechaRetorno  string `json:"fecha_retorno"`
		Observaciones string `json:"observaciones"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Faltan campos requeridos"})
		return
	}

	salida, err := parseFecha(in.FechaSalida)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	var retorno *time.Time
	if in.FechaRetorno != "" {
		t, err := parseFecha(in.FechaRetorno)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
			return
		}
		retorno = &t
	}

	p, err := pc.Repo.CreatePrestamo(c.Request.Context(), db.CreatePrestamoInput{
		HerramientaID: in.HerramientaID,
		SolicitanteID: in.SolicitanteID,
		Cantidad:      in.Cantidad,
		FechaSalida:   salida,
		FechaRetorno:  retorno,
		Observaciones: in.Observaciones,
	})
	if errors.Is(err, db.ErrStockInsuficiente) {
		c.JSON(http.StatusBadRequest, app.H{"error": "No hay suficiente stock disponible"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{
		"id":              p.ID,
		"codigo_prestamo": p.CodigoPrestamo,
		"message":         "Préstamo registrado exitosamente",
	})
}

type DevolucionController struct{ *Srv }

func NewDevolucionController(s *Srv) *DevolucionController { return &DevolucionController{Srv: s} }

func (dc *DevolucionController) List(c *gin.Context) {
	rows, err := dc.Repo.ListDevoluciones(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (dc *DevolucionController) Create(c *gin.Context) {
	var in struct {
		PrestamoID        uint   `json:"prestamo_id" binding:"required"`
		Cantidad          int    `json:"cantidad" binding:"required,gt=0"`
		FechaDevolucion   string `json:"fecha_devolucion" binding:"required"`
		EstadoHerramienta string `json:"estado_herramienta"`
		Observaciones     string `json:"observaciones"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Faltan campos requeridos"})
		return
	}

	fecha, err := parseFecha(in.FechaDevolucion)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	d, err := dc.Repo.CreateDevolucion(c.Request.Context(), db.CreateDevolucionInput{
		PrestamoID:        in.PrestamoID,
		Cantidad:          in.Cantidad,
		FechaDevolucion:   fecha,
		EstadoHerramienta: in.EstadoHerramienta,
		Observaciones:     in.Observaciones,
	})
	if errors.Is(err, db.ErrPrestamoNoActivo) {
		c.JSON(http.StatusNotFound, app.H{"error": "Préstamo no encontrado o ya devuelto"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{
		"id":                d.ID,
		"codigo_devolucion": d.CodigoDevolucion,
		"message":           "Devolución registrada exitosamente",
	})
}
