// Package excel genera el reporte XLSX "Anexo 2" del inventario valorizado con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/pkg/sunat"
)

var _ ports.InventoryReportGenerator = (*Anexo2Generator)(nil)

// SheetName nombre de la única hoja del libro.
const SheetName = "Anexo 2"

// Layout fijo: bloque de cabecera en filas 1-5, títulos de columna en la 7, datos desde la 8.
const (
	headerRow    = 7
	firstDataRow = 8
)

var columns = []struct {
	title string
	width float64
}{
	{"N°", 6},
	{"Código de la existencia", 18},
	{"Tipo de existencia (tabla 5)", 14},
	{"Descripción", 42},
	{"Unidad de medida (tabla 6)", 12},
	{"Cantidad", 14},
	{"Costo unitario", 14},
	{"Costo total", 16},
}

// Anexo2Generator construye el formato del inventario permanente valorizado.
type Anexo2Generator struct{}

// NewAnexo2Generator construye el generador.
func NewAnexo2Generator() *Anexo2Generator { return &Anexo2Generator{} }

// Anexo2 devuelve el libro XLSX en bytes.
func (g *Anexo2Generator) Anexo2(
	_ context.Context,
	company *entity.Company,
	period string,
	products []*entity.Product,
) ([]byte, error) {
	if company == nil {
		return nil, fmt.Errorf("excel: empresa nil")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	lastCol, _ := excelize.ColumnNumberToName(len(columns))

	// ── Cabecera ─────────────────────────────────────────────────────────────
	w := &sheetWriter{f: f}
	w.set("A1", "ANEXO 2: INVENTARIO PERMANENTE VALORIZADO - DETALLE DE EXISTENCIAS")
	w.merge("A1", lastCol+"1")
	w.style("A1", lastCol+"1", st.title)
	w.set("A2", "PERIODO:")
	w.set("C2", period)
	w.set("A3", "RUC:")
	w.set("C3", company.RUC)
	w.set("A4", "RAZÓN SOCIAL:")
	w.set("C4", company.RazonSocial)
	w.set("A5", "MÉTODO DE VALUACIÓN:")
	w.set("C5", "PROMEDIO PONDERADO")
	w.style("A2", "A5", st.label)

	// ── Títulos de columna ───────────────────────────────────────────────────
	for i, c := range columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		w.set(fmt.Sprintf("%s%d", name, headerRow), c.title)
		w.width(name, c.width)
	}
	w.style(fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), st.header)

	// ── Detalle ──────────────────────────────────────────────────────────────
	total := decimal.Zero
	r := firstDataRow
	for i, p := range products {
		unit := p.UnitCode
		if unit == "" {
			unit = sunat.UnitNIU
		}
		cost := p.TotalCost()
		total = total.Add(cost)
		w.row(r, i+1, p.Code, p.ExistenceType, p.Description, unit,
			p.Quantity.InexactFloat64(), p.UnitCost.InexactFloat64(), cost.InexactFloat64())
		r++
	}
	if len(products) > 0 {
		w.style(fmt.Sprintf("A%d", firstDataRow), fmt.Sprintf("E%d", r-1), st.cell)
		w.style(fmt.Sprintf("F%d", firstDataRow), fmt.Sprintf("%s%d", lastCol, r-1), st.number)
	}

	// ── Total ────────────────────────────────────────────────────────────────
	w.set(fmt.Sprintf("A%d", r), "COSTO TOTAL GENERAL")
	w.merge(fmt.Sprintf("A%d", r), fmt.Sprintf("G%d", r))
	w.set(fmt.Sprintf("%s%d", lastCol, r), total.InexactFloat64())
	w.style(fmt.Sprintf("A%d", r), fmt.Sprintf("%s%d", lastCol, r), st.total)

	if w.err != nil {
		return nil, fmt.Errorf("excel: escribir anexo 2: %w", w.err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter acumula el primer error para no chequear cada celda.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(cell string, v any) {
	if w.err == nil {
		w.err = w.f.SetCellValue(SheetName, cell, v)
	}
}

func (w *sheetWriter) merge(from, to string) {
	if w.err == nil {
		w.err = w.f.MergeCell(SheetName, from, to)
	}
}

func (w *sheetWriter) style(from, to string, id int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(SheetName, from, to, id)
	}
}

func (w *sheetWriter) width(col string, width float64) {
	if w.err == nil {
		w.err = w.f.SetColWidth(SheetName, col, col, width)
	}
}

func (w *sheetWriter) row(r int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(SheetName, cell, &values)
}

type styles struct {
	title, label, header, cell, number, total int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	numFmt := "#,##0.00"
	defs := []*excelize.Style{
		{Font: &excelize.Font{Bold: true, Size: 12}, Alignment: &excelize.Alignment{Horizontal: "center"}},
		{Font: &excelize.Font{Bold: true}},
		{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"9B1C1F"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    border,
		},
		{Border: border},
		{Border: border, CustomNumFmt: &numFmt},
		{Font: &excelize.Font{Bold: true}, Border: border, CustomNumFmt: &numFmt},
	}
	ids := make([]int, len(defs))
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return styles{}, fmt.Errorf("excel: crear estilo: %w", err)
		}
		ids[i] = id
	}
	return styles{title: ids[0], label: ids[1], header: ids[2], cell: ids[3], number: ids[4], total: ids[5]}, nil
}
