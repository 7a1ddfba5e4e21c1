// Package xlsx renderiza la factura como hoja de cálculo.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	appbilling "github.com/tsvetanka/ERP-Billing/internal/application/billing"
	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
)

// SheetName hoja única del libro.
const SheetName = "Bill"

var _ appbilling.BillRenderer = (*ExcelizeBillGenerator)(nil)

// ExcelizeBillGenerator implementa billing.BillRenderer con excelize.
type ExcelizeBillGenerator struct{}

// NewExcelizeBillGenerator construye el generador.
func NewExcelizeBillGenerator() *ExcelizeBillGenerator { return &ExcelizeBillGenerator{} }

// Extension de los artefactos generados.
func (g *ExcelizeBillGenerator) Extension() string { return "xlsx" }

// Render arma el libro: título, detalle (etiqueta, periodo, kWh, tarifa) y totales en negrita.
func (g *ExcelizeBillGenerator) Render(_ context.Context, bill *entity.Bill) ([]byte, error) {
	doc := appbilling.NewBillDocument(bill)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	set := func(cell string, v any) {
		_ = f.SetCellValue(SheetName, cell, v)
	}

	set("A1", doc.Title())
	_ = f.SetCellStyle(SheetName, "A1", "A1", bold)

	set("A3", "Usage on")
	set("B3", "Period")
	set("C3", "kWh")
	set("D3", fmt.Sprintf("Rate (%s/kWh)", doc.Currency))
	_ = f.SetCellStyle(SheetName, "A3", "D3", bold)

	r := 4
	for _, u := range doc.Usage {
		set(fmt.Sprintf("A%d", r), u.Label)
		set(fmt.Sprintf("B%d", r), u.Period)
		set(fmt.Sprintf("C%d", r), u.KWh)
		set(fmt.Sprintf("D%d", r), u.Rate.InexactFloat64())
		r++
	}

	r++
	totals := []struct {
		label string
		value any
	}{
		{"Daytime Total Usage (kWh)", doc.DaytimeTotal},
		{"Nighttime Total Usage (kWh)", doc.NighttimeTotal},
		{fmt.Sprintf("Total Cost (%s)", doc.Currency), doc.TotalCost.StringFixed(2)},
	}
	first := r
	for _, t := range totals {
		set(fmt.Sprintf("A%d", r), t.label)
		set(fmt.Sprintf("C%d", r), t.value)
		r++
	}
	_ = f.SetCellStyle(SheetName, fmt.Sprintf("A%d", first), fmt.Sprintf("D%d", r-1), bold)
	_ = f.SetColWidth(SheetName, "A", "A", 30)
	_ = f.SetColWidth(SheetName, "B", "D", 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
