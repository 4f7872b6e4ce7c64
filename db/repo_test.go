package db

import (
	"context"
	"testing"

	"sistema-bodega/models"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("abrir base en memoria: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewRepo(store)
}

func seedCategoria(t *testing.T, r *Repo, nombre string) *models.Categoria {
	t.Helper()
	c := &models.Categoria{Nombre: nombre}
	if err := r.CreateCategoria(context.Background(), c); err != nil {
		t.Fatalf("crear categoría %q: %v", nombre, err)
	}
	return c
}

func seedHerramienta(t *testing.T, r *Repo, codigo string, stock int) *models.Herramienta {
	t.Helper()
	cat := seedCategoria(t, r, "cat-"+codigo)
	h := &models.Herramienta{
		Codigo:      codigo,
		Nombre:      "Herramienta " + codigo,
		CategoriaID: cat.ID,
		StockTotal:  stock,
	}
	if err := r.CreateHerramienta(context.Background(), h); err != nil {
		t.Fatalf("crear herramienta %q: %v", codigo, err)
	}
	return h
}

func seedSolicitante(t *testing.T, r *Repo, nombre string) *models.Solicitante {
	t.Helper()
	s := &models.Solicitante{
		Nombre:       nombre,
		Departamento: "Mantenimiento",
		Email:        nombre + "@example.com",
	}
	if err := r.CreateSolicitante(context.Background(), s); err != nil {
		t.Fatalf("crear solicitante %q: %v", nombre, err)
	}
	return s
}

func getHerramienta(t *testing.T, r *Repo, id uint) *HerramientaRow {
	t.Helper()
	h, err := r.FindHerramientaByID(context.Background(), id)
	if err != nil {
		t.Fatalf("leer herramienta %d: %v", id, err)
	}
	return h
}
