// Package backup implementa respaldo y restauración por copia del archivo
// SQLite, más un timer periódico.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sistema-bodega/db"
)

var (
	ErrBackupNoEncontrado = errors.New("backup no encontrado")
	ErrNombreInvalido     = errors.New("nombre de backup inválido")
)

type Service struct {
	store *db.Store
	dir   string
}

type Info struct {
	File  string    `json:"file"`
	Size  int64     `json:"size"`
	MTime time.Time `json:"mtime"`
}

func New(store *db.Store, dir string) *Service {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[ERROR] crear directorio de backups: %v", err)
	}
	return &Service{store: store, dir: dir}
}

// Create copia el archivo de base de datos al directorio de backups.
func (s *Service) Create() (string, error) {
	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	dest := filepath.Join(s.dir, fmt.Sprintf("herramientas-%s.db", timestamp))
	if err := copyFile(s.store.Path(), dest); err != nil {
		return "", err
	}
	log.Printf("[INFO] backup creado: %s", dest)
	return filepath.Base(dest), nil
}

// List devuelve los backups disponibles, el más reciente primero.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".db") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{File: e.Name(), Size: fi.Size(), MTime: fi.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].MTime.After(infos[j].MTime) })
	return infos, nil
}

// Restore reemplaza la base de datos por el backup indicado. La conexión se
// cierra durante la copia y se reabre después; ningún otro escritor toca el
// archivo en ese lapso.
func (s *Service) Restore(filename string) error {
	// Sin separadores de ruta: el nombre viene del cliente.
	if filename == "" || filename != filepath.Base(filename) || !strings.HasSuffix(filename, ".db") {
		return ErrNombreInvalido
	}
	src := filepath.Join(s.dir, filename)
	if _, err := os.Stat(src); err != nil {
		return ErrBackupNoEncontrado
	}

	err := s.store.WithExclusive(func(dbPath string) error {
		return copyFile(src, dbPath)
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO] backup restaurado desde %s", filename)
	return nil
}

// Run dispara un backup cada intervalo hasta que el contexto se cancele.
func (s *Service) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Create(); err != nil {
				log.Printf("[ERROR] backup periódico: %v", err)
			}
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
