package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sistema-bodega/models"
)

// Store es el dueño de la conexión SQLite. El restore de un backup necesita
// cerrar y reabrir el archivo excluyendo escritores concurrentes, por eso la
// conexión vive detrás de un RWMutex en vez de en un global.
type Store struct {
	mu   sync.RWMutex
	gdb  *gorm.DB
	path string
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
	}

	gdb, err := openGorm(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	log.Printf("[INFO] base de datos abierta en %s", path)
	return &Store{gdb: gdb, path: path}, nil
}

func openGorm(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serializa escritores; un pool de una conexión evita SQLITE_BUSY
	// y hace que las bases :memory: de los tests vean una sola instancia.
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

// DB devuelve el manejador actual. No retiene el lock durante las consultas:
// durante un restore las peticiones en vuelo fallan y se reportan como 500,
// igual que en el comportamiento de referencia.
func (s *Store) DB() *gorm.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gdb
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithExclusive cierra la conexión, ejecuta fn (típicamente la copia del
// archivo de backup) y reabre. Ningún otro escritor toca el archivo mientras
// fn corre.
func (s *Store) WithExclusive(fn func(path string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlDB, err := s.gdb.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("cerrar base de datos: %w", err)
	}

	fnErr := fn(s.path)

	gdb, openErr := openGorm(s.path)
	if openErr != nil {
		return fmt.Errorf("reabrir base de datos: %w", openErr)
	}
	s.gdb = gdb
	return fnErr
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.Usuario{},
		&models.Sesion{},
		&models.Categoria{},
		&models.Herramienta{},
		&models.Solicitante{},
		&models.Prestamo{},
		&models.Devolucion{},
	); err != nil {
		return err
	}

	// Acelera el conteo de préstamos activos por herramienta/solicitante,
	// que corre en cada delete del catálogo.
	if err := gdb.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_activos_herramienta
	  ON %s (herramienta_id)
	  WHERE estado = 'Activo';
	`, models.PrestamoTable, models.PrestamoTable)).Error; err != nil {
		return err
	}
	if err := gdb.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_activos_solicitante
	  ON %s (solicitante_id)
	  WHERE estado = 'Activo';
	`, models.PrestamoTable, models.PrestamoTable)).Error; err != nil {
		return err
	}

	return nil
}
