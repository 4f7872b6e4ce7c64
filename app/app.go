package app

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sistema-bodega/backup"
	"sistema-bodega/config"
	"sistema-bodega/db"
)

// Aliases para abreviar en los handlers.
type Ctx = gin.Context
type H = gin.H

// App agrega las dependencias compartidas del proceso.
type App struct {
	Router  *gin.Engine
	Store   *db.Store
	Repo    *db.Repo
	RDB     *redis.Client
	Backups *backup.Service
	Config  config.Config
}

func MustNew() *App {
	cfg := config.Load()

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	repo := db.NewRepo(store)

	// Redis es opcional: sin él, el sweep de sesiones y el touch de último
	// acceso corren sin throttling.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}
	} else {
		log.Println("[INFO] REDIS_ADDR no configurado, middleware sin throttling")
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router:  r,
		Store:   store,
		Repo:    repo,
		RDB:     rdb,
		Backups: backup.New(store, cfg.BackupDir),
		Config:  cfg,
	}
}

func (a *App) Close() {
	if a.RDB != nil {
		_ = a.RDB.Close()
	}
	_ = a.Store.Close()
}
