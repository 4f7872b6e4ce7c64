package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sistema-bodega/app"
	"sistema-bodega/backup"
)

type BackupController struct{ *Srv }

func NewBackupController(s *Srv) *BackupController { return &BackupController{Srv: s} }

func (bc *BackupController) Create(c *gin.Context) {
	file, err := bc.Backups.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Backup creado", "file": file})
}

func (bc *BackupController) List(c *gin.Context) {
	infos, err := bc.Backups.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, infos)
}

func (bc *BackupController) Restore(c *gin.Context) {
	var in struct {
		Filename string `json:"filename" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "filename requerido"})
		return
	}

	err := bc.Backups.Restore(in.Filename)
	switch {
	case errors.Is(err, backup.ErrNombreInvalido):
		c.JSON(http.StatusBadRequest, app.H{"error": "filename requerido"})
	case errors.Is(err, backup.ErrBackupNoEncontrado):
		c.JSON(http.StatusNotFound, app.H{"error": "Backup no encontrado"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, app.H{"message": "Backup restaurado correctamente"})
	}
}
