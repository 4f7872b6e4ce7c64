package controllers

import (
	"fmt"
	"time"

	"sistema-bodega/app"
	"sistema-bodega/backup"
	"sistema-bodega/config"
	"sistema-bodega/db"
)

// Srv agrupa las dependencias que comparten todos los controladores.
type Srv struct {
	Repo    *db.Repo
	Backups *backup.Service
	Cfg     config.Config
}

func NewSrv(repo *db.Repo, backups *backup.Service, cfg config.Config) *Srv {
	return &Srv{Repo: repo, Backups: backups, Cfg: cfg}
}

func GetSrv(a *app.App) *Srv {
	return NewSrv(a.Repo, a.Backups, a.Config)
}

// parseFecha acepta fechas de negocio "2006-01-02" o timestamps RFC 3339.
func parseFecha(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q", s)
}
