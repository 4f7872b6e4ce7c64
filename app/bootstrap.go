package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"

	"sistema-bodega/auth"
	"sistema-bodega/config"
	"sistema-bodega/db"
	"sistema-bodega/models"
)

// BootstrapAdmin crea el primer admin si la tabla de usuarios está vacía.
// Sin ADMIN_PASSWORD genera una contraseña aleatoria y la deja en el log
// para el primer acceso.
func BootstrapAdmin(ctx context.Context, cfg config.Config, repo *db.Repo) {
	n, err := repo.CountUsuarios(ctx)
	if err != nil {
		log.Printf("[ERROR] bootstrap: no se pudo contar usuarios: %v", err)
		return
	}
	if n > 0 {
		return
	}

	password := cfg.AdminPassword
	generated := false
	if password == "" {
		buf := make([]byte, 12)
		rand.Read(buf)
		password = hex.EncodeToString(buf)
		generated = true
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("[ERROR] bootstrap: hash de contraseña: %v", err)
		return
	}

	admin := &models.Usuario{
		NombreUsuario:  cfg.AdminUsuario,
		Email:          cfg.AdminEmail,
		PasswordHash:   hash,
		NombreCompleto: "Administrador",
		Rol:            models.RolAdmin,
		Activo:         true,
	}
	if err := repo.CreateUsuario(ctx, admin); err != nil {
		log.Printf("[ERROR] bootstrap: crear admin: %v", err)
		return
	}

	log.Printf("[BOOTSTRAP] usuario admin %q creado", admin.NombreUsuario)
	if generated {
		log.Printf("[BOOTSTRAP] contraseña inicial: %s (cámbiala con /api/auth/change-password)", password)
	}
}
