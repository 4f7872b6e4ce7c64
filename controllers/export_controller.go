package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"sistema-bodega/app"
)

type ExportController struct{ *Srv }

func NewExportController(s *Srv) *ExportController { return &ExportController{Srv: s} }

const fechaCorta = "2006-01-02"

func writeCSV(c *gin.Context, filename string, header []string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

func (ec *ExportController) InventarioCSV(c *gin.Context) {
	hs, err := ec.Repo.ListHerramientas(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Error generando CSV: %s", err.Error())
		return
	}

	rows := make([][]string, 0, len(hs))
	for _, h := range hs {
		rows = append(rows, []string{
			fmt.Sprint(h.ID), h.Codigo, h.Nombre, h.CategoriaNombre,
			fmt.Sprint(h.StockTotal), fmt.Sprint(h.EnBodega), fmt.Sprint(h.Prestadas), h.Estado,
		})
	}
	writeCSV(c, "inventario.csv",
		[]string{"id", "codigo", "nombre", "categoria", "stock_total", "en_bodega", "prestadas", "estado"},
		rows)
}

func (ec *ExportController) PrestamosCSV(c *gin.Context) {
	ps, err := ec.Repo.ListPrestamos(c.Request.Context(), false)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error generando CSV: %s", err.Error())
		return
	}

	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		retorno := ""
		if p.FechaRetorno != nil {
			retorno = p.FechaRetorno.Format(fechaCorta)
		}
		rows = append(rows, []string{
			fmt.Sprint(p.ID), p.CodigoPrestamo,
			fmt.Sprint(p.HerramientaID), p.HerramientaNombre,
			fmt.Sprint(p.SolicitanteID), p.SolicitanteNombre,
			fmt.Sprint(p.Cantidad), p.FechaSalida.Format(fechaCorta), retorno, p.Estado,
		})
	}
	writeCSV(c, "prestamos.csv",
		[]string{"id", "codigo_prestamo", "herramienta_id", "herramienta", "solicitante_id", "solicitante", "cantidad", "fecha_salida", "fecha_retorno", "estado"},
		rows)
}

// ReportXLSX genera el reporte completo en tres hojas.
func (ec *ExportController) ReportXLSX(c *gin.Context) {
	ctx := c.Request.Context()
	hs, err := ec.Repo.ListHerramientas(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	ps, err := ec.Repo.ListPrestamos(ctx, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	ds, err := ec.Repo.ListDevoluciones(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Inventario")
	_ = f.SetSheetRow("Inventario", "A1", &[]interface{}{
		"ID", "Codigo", "Nombre", "Categoria", "Stock Total", "En Bodega", "Prestadas", "Estado"})
	for i, h := range hs {
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow("Inventario", cell, &[]interface{}{
			h.ID, h.Codigo, h.Nombre, h.CategoriaNombre, h.StockTotal, h.EnBodega, h.Prestadas, h.Estado})
	}

	_, _ = f.NewSheet("Prestamos")
	_ = f.SetSheetRow("Prestamos", "A1", &[]interface{}{
		"ID", "Codigo", "Herramienta", "Solicitante", "Cantidad", "Fecha Salida", "Fecha Retorno", "Estado"})
	for i, p := range ps {
		retorno := ""
		if p.FechaRetorno != nil {
			retorno = p.FechaRetorno.Format(fechaCorta)
		}
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow("Prestamos", cell, &[]interface{}{
			p.ID, p.CodigoPrestamo, p.HerramientaNombre, p.SolicitanteNombre,
			p.Cantidad, p.FechaSalida.Format(fechaCorta), retorno, p.Estado})
	}

	_, _ = f.NewSheet("Devoluciones")
	_ = f.SetSheetRow("Devoluciones", "A1", &[]interface{}{
		"ID", "Codigo", "Prestamo", "Herramienta", "Cantidad", "Fecha", "Dias Uso", "Estado Herramienta", "Observaciones"})
	for i, d := range ds {
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow("Devoluciones", cell, &[]interface{}{
			d.ID, d.CodigoDevolucion, d.CodigoPrestamo, d.HerramientaNombre,
			d.Cantidad, d.FechaDevolucion.Format(fechaCorta), d.DiasUso, d.EstadoHerramienta, d.Observaciones})
	}

	filename := fmt.Sprintf("report-%s.xlsx", time.Now().UTC().Format("2006-01-02T15-04-05"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
