// Package pdf genera la factura mensual de consumo eléctrico en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Monthly Bill for <cliente> (ID: <id>)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Etiqueta | Periodo | kWh | Tarifa                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES (negrita): diurno / nocturno / costo total          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	appbilling "github.com/tsvetanka/ERP-Billing/internal/application/billing"
	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// fontFamily fuente UTF-8 embebida (Go fonts). Helvetica sólo cubre cp1252, sin cirílico.
const fontFamily = "go"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.BillRenderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.BillRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// Extension de los artefactos generados.
func (g *MarotoPDFGenerator) Extension() string { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(_ context.Context, bill *entity.Bill) ([]byte, error) {
	doc := appbilling.NewBillDocument(bill)

	fonts, err := repository.New().
		AddUTF8FontFromBytes(fontFamily, fontstyle.Normal, goregular.TTF).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Bold, gobold.TTF).
		Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: cargar fuentes: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithCustomFonts(fonts).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: fontFamily, Size: 9}).
		WithTitle(doc.Title(), true).
		WithAuthor(nonEmpty(g.author, "ERP Billing"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(doc.Currency))
	m.AddRows(tableUsageRows(doc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc appbilling.BillDocument) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(doc.Title(), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func tableHeaderRow(currency string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Usage on", 4, align.Left),
		h("Period", 3, align.Left),
		h("kWh", 2, align.Right),
		h("Rate ("+currency+"/kWh)", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableUsageRows: una fila por línea de detalle (diurna y nocturna por etiqueta).
func tableUsageRows(doc appbilling.BillDocument) []core.Row {
	result := make([]core.Row, 0, len(doc.Usage))
	for _, u := range doc.Usage {
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(u.Label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(u.Period, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", u.KWh), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(u.Rate.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRows(doc appbilling.BillDocument) []core.Row {
	lines := doc.TotalLines()
	rows := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		ps := props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}
		if i == len(lines)-1 {
			ps.Size = 11
			ps.Color = colorPrimary
		}
		rows = append(rows, row.New(7).Add(col.New(12).Add(text.New(l, ps))))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
