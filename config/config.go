package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	JWTSecret string

	DBPath         string
	BackupDir      string
	BackupInterval time.Duration

	RedisAddr string
	RedisPwd  string

	WebOrigin string

	// Credenciales del primer admin, usadas solo si la tabla de usuarios
	// está vacía al arrancar.
	AdminUsuario  string
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	interval := 24 * time.Hour
	if v := os.Getenv("BACKUP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("[WARN] BACKUP_INTERVAL inválido %q, usando %s", v, interval)
		} else {
			interval = d
		}
	}

	return Config{
		Port:           getEnv("PORT", "3000"),
		JWTSecret:      getEnv("JWT_SECRET", "bodega-secreto-2026"),
		DBPath:         getEnv("DB_PATH", "database/herramientas.db"),
		BackupDir:      getEnv("BACKUP_DIR", "backups"),
		BackupInterval: interval,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPwd:       os.Getenv("REDIS_PASSWORD"),
		WebOrigin:      getEnv("WEB_ORIGIN", "http://localhost:3000"),
		AdminUsuario:   getEnv("ADMIN_USUARIO", "admin"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@bodega.local"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
