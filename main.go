package main

import (
	"context"
	"log"

	"sistema-bodega/app"
	"sistema-bodega/routes"
)

func main() {
	application := app.MustNew()
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.BootstrapAdmin(ctx, application.Config, application.Repo)

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	// Backup periódico
	go application.Backups.Run(ctx, application.Config.BackupInterval)

	log.Printf("listening on :%s", application.Config.Port)
	if err := r.Run(":" + application.Config.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
