// Package html renderiza la factura como marcado HTML simple: una línea por consumo y totales en negrita.
package html

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	appbilling "github.com/tsvetanka/ERP-Billing/internal/application/billing"
	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
)

var _ appbilling.BillRenderer = (*BillGenerator)(nil)

var billTemplate = template.Must(template.New("bill").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<b>{{.Title}}</b><br>
{{range .Usage}}{{.}}<br>
{{end}}{{range .Totals}}<b>{{.}}</b><br>
{{end}}</body>
</html>
`))

// BillGenerator implementa billing.BillRenderer con html/template.
type BillGenerator struct{}

// NewBillGenerator construye el generador.
func NewBillGenerator() *BillGenerator { return &BillGenerator{} }

// Extension de los artefactos generados.
func (g *BillGenerator) Extension() string { return "html" }

// Render devuelve el documento HTML. Los textos se escapan (nombres con < o &).
func (g *BillGenerator) Render(_ context.Context, bill *entity.Bill) ([]byte, error) {
	doc := appbilling.NewBillDocument(bill)
	var buf bytes.Buffer
	err := billTemplate.Execute(&buf, struct {
		Title  string
		Usage  []string
		Totals []string
	}{
		Title:  doc.Title(),
		Usage:  doc.UsageLines(),
		Totals: doc.TotalLines(),
	})
	if err != nil {
		return nil, fmt.Errorf("html: ejecutar plantilla: %w", err)
	}
	return buf.Bytes(), nil
}
