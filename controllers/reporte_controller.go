package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sistema-bodega/app"
)

type ReporteController struct{ *Srv }

func NewReporteController(s *Srv) *ReporteController { return &ReporteController{Srv: s} }

func (rc *ReporteController) Resumen(c *gin.Context) {
	rows, err := rc.Repo.ResumenInventario(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (rc *ReporteController) Estadisticas(c *gin.Context) {
	st, err := rc.Repo.Estadisticas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}
