package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"sistema-bodega/models"
)

func TestCreateHerramientaInicializaContadores(t *testing.T) {
	r := newTestRepo(t)
	h := seedHerramienta(t, r, "INV-001", 8)

	got := getHerramienta(t, r, h.ID)
	if got.EnBodega != 8 || got.Prestadas != 0 {
		t.Errorf("contadores iniciales = (%d, %d), quiero (8, 0)", got.EnBodega, got.Prestadas)
	}
	if got.Estado != "Activo" {
		t.Errorf("estado por defecto = %q, quiero \"Activo\"", got.Estado)
	}
	if got.CategoriaNombre == "" {
		t.Error("el listado debe traer el nombre de la categoría")
	}
}

func TestUpdateHerramientaReconciliaBodega(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	h := seedHerramienta(t, r, "INV-002", 10)

	// Reducir stock_total sin mandar en_bodega recorta la bodega al total.
	if err := r.UpdateHerramienta(ctx, h.ID, UpdateHerramientaInput{
		Codigo:      h.Codigo,
		Nombre:      h.Nombre,
		CategoriaID: h.CategoriaID,
		StockTotal:  6,
		Estado:      "Activo",
	}); err != nil {
		t.Fatalf("UpdateHerramienta: %v", err)
	}
	got := getHerramienta(t, r, h.ID)
	if got.StockTotal != 6 || got.EnBodega != 6 {
		t.Errorf("tras reducir total: (total=%d bodega=%d), quiero (6, 6)", got.StockTotal, got.EnBodega)
	}

	// Un en_bodega explícito se respeta tal cual.
	enBodega := 2
	if err := r.UpdateHerramienta(ctx, h.ID, UpdateHerramientaInput{
		Codigo:      h.Codigo,
		Nombre:      h.Nombre,
		CategoriaID: h.CategoriaID,
		StockTotal:  6,
		Estado:      "Activo",
		EnBodega:    &enBodega,
	}); err != nil {
		t.Fatalf("UpdateHerramienta: %v", err)
	}
	if got = getHerramienta(t, r, h.ID); got.EnBodega != 2 {
		t.Errorf("en_bodega = %d, quiero 2", got.EnBodega)
	}
}

func TestDeleteHerramientaConPrestamoActivo(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	h := seedHerramienta(t, r, "INV-003", 5)
	s := seedSolicitante(t, r, "Elena Vidal")

	p, err := r.CreatePrestamo(ctx, CreatePrestamoInput{
		HerramientaID: h.ID,
		SolicitanteID: s.ID,
		Cantidad:      1,
		FechaSalida:   time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePrestamo: %v", err)
	}

	if err := r.DeleteHerramienta(ctx, h.ID); !errors.Is(err, ErrHerramientaEnUso) {
		t.Fatalf("err = %v, quiero ErrHerramientaEnUso", err)
	}
	if err := r.DeleteSolicitante(ctx, s.ID); !errors.Is(err, ErrSolicitanteEnUso) {
		t.Fatalf("err = %v, quiero ErrSolicitanteEnUso", err)
	}

	// Cerrado el préstamo, ambos borrados proceden.
	if _, err := r.CreateDevolucion(ctx, CreateDevolucionInput{
		PrestamoID:      p.ID,
		Cantidad:        1,
		FechaDevolucion: time.Now(),
	}); err != nil {
		t.Fatalf("CreateDevolucion: %v", err)
	}
	if err := r.DeleteHerramienta(ctx, h.ID); err != nil {
		t.Errorf("DeleteHerramienta tras devolución: %v", err)
	}
	if err := r.DeleteSolicitante(ctx, s.ID); err != nil {
		t.Errorf("DeleteSolicitante tras devolución: %v", err)
	}
}

func TestDeleteCategoriaEnUso(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	h := seedHerramienta(t, r, "INV-004", 1)

	if err := r.DeleteCategoria(ctx, h.CategoriaID); !errors.Is(err, ErrCategoriaEnUso) {
		t.Fatalf("err = %v, quiero ErrCategoriaEnUso", err)
	}

	vacia := seedCategoria(t, r, "sin-herramientas")
	if err := r.DeleteCategoria(ctx, vacia.ID); err != nil {
		t.Errorf("borrar categoría vacía: %v", err)
	}
	if err := r.DeleteCategoria(ctx, vacia.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("segundo borrado: err = %v, quiero ErrRecordNotFound", err)
	}
}

func TestRegisterSolicitanteDuplicado(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	s := &models.Solicitante{Nombre: "Nora Ibáñez", Departamento: "Obras", Email: "nora@example.com"}
	if err := r.RegisterSolicitante(ctx, s); err != nil {
		t.Fatalf("RegisterSolicitante: %v", err)
	}

	porNombre := &models.Solicitante{Nombre: "Nora Ibáñez", Departamento: "Obras"}
	if err := r.RegisterSolicitante(ctx, porNombre); !errors.Is(err, ErrSolicitanteDuplicado) {
		t.Errorf("duplicado por nombre: err = %v, quiero ErrSolicitanteDuplicado", err)
	}
	porEmail := &models.Solicitante{Nombre: "Otra Persona", Departamento: "Obras", Email: "nora@example.com"}
	if err := r.RegisterSolicitante(ctx, porEmail); !errors.Is(err, ErrSolicitanteDuplicado) {
		t.Errorf("duplicado por email: err = %v, quiero ErrSolicitanteDuplicado", err)
	}
}
