package db

import (
	"context"
	"testing"
	"time"
)

func TestResumenYEstadisticas(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	h := seedHerramienta(t, r, "REP-001", 10)
	s := seedSolicitante(t, r, "Hugo Prado")

	p, err := r.CreatePrestamo(ctx, CreatePrestamoInput{
		HerramientaID: h.ID,
		SolicitanteID: s.ID,
		Cantidad:      4,
		FechaSalida:   time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePrestamo: %v", err)
	}
	if _, err := r.CreateDevolucion(ctx, CreateDevolucionInput{
		PrestamoID:      p.ID,
		Cantidad:        1,
		FechaDevolucion: time.Now(),
	}); err != nil {
		t.Fatalf("CreateDevolucion: %v", err)
	}

	resumen, err := r.ResumenInventario(ctx)
	if err != nil {
		t.Fatalf("ResumenInventario: %v", err)
	}
	if len(resumen) != 1 {
		t.Fatalf("resumen con %d filas, quiero 1", len(resumen))
	}
	row := resumen[0]
	if row.EnBodega != 7 || row.Prestadas != 3 {
		t.Errorf("resumen = (bodega=%d prestadas=%d), quiero (7, 3)", row.EnBodega, row.Prestadas)
	}
	if row.PorcentajeDisponible != 70.0 {
		t.Errorf("porcentaje_disponible = %v, quiero 70", row.PorcentajeDisponible)
	}
	if row.Categoria == "" {
		t.Error("resumen sin nombre de categoría")
	}

	st, err := r.Estadisticas(ctx)
	if err != nil {
		t.Fatalf("Estadisticas: %v", err)
	}
	if st.TotalHerramientas != 1 || st.HerramientasActivas != 1 {
		t.Errorf("herramientas = (total=%d activas=%d), quiero (1, 1)", st.TotalHerramientas, st.HerramientasActivas)
	}
	if st.HerramientasPrestadas != 3 {
		t.Errorf("herramientas_prestadas = %d, quiero 3", st.HerramientasPrestadas)
	}
	if st.PrestamosActivos != 1 || st.TotalDevoluciones != 1 {
		t.Errorf("prestamos_activos=%d devoluciones=%d, quiero 1 y 1", st.PrestamosActivos, st.TotalDevoluciones)
	}
}

func TestEstadisticasBaseVacia(t *testing.T) {
	r := newTestRepo(t)
	st, err := r.Estadisticas(context.Background())
	if err != nil {
		t.Fatalf("Estadisticas: %v", err)
	}
	if st.TotalHerramientas != 0 || st.HerramientasPrestadas != 0 || st.PrestamosActivos != 0 {
		t.Errorf("estadísticas en base vacía: %+v", st)
	}
}
