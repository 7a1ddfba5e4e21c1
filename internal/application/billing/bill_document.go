package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
)

// Periodos de una línea de consumo.
const (
	PeriodDaytime   = "Daytime"
	PeriodNighttime = "Nighttime"
)

// BillUsageLine una línea del detalle: consumo de una etiqueta en un periodo.
type BillUsageLine struct {
	Label  string
	Period string
	KWh    int64
	Rate   decimal.Decimal
}

// BillDocument vista común para los renderizadores (PDF, HTML, XLSX).
type BillDocument struct {
	CustomerID     string
	CustomerName   string
	Currency       string
	Usage          []BillUsageLine
	DaytimeTotal   int64
	NighttimeTotal int64
	DaytimeRate    decimal.Decimal
	NighttimeRate  decimal.Decimal
	TotalCost      decimal.Decimal
}

// NewBillDocument arma el detalle: por cada etiqueta, una línea diurna seguida de una nocturna.
func NewBillDocument(bill *entity.Bill) BillDocument {
	doc := BillDocument{
		CustomerID:     bill.CustomerID,
		CustomerName:   bill.CustomerName,
		Currency:       bill.Currency,
		Usage:          make([]BillUsageLine, 0, 2*len(bill.Summary.Labels)),
		DaytimeTotal:   bill.Summary.DaytimeTotal,
		NighttimeTotal: bill.Summary.NighttimeTotal,
		DaytimeRate:    bill.DaytimeRate,
		NighttimeRate:  bill.NighttimeRate,
		TotalCost:      bill.TotalCost,
	}
	for _, l := range bill.Summary.Labels {
		doc.Usage = append(doc.Usage,
			BillUsageLine{Label: l.Label, Period: PeriodDaytime, KWh: l.Daytime, Rate: bill.DaytimeRate},
			BillUsageLine{Label: l.Label, Period: PeriodNighttime, KWh: l.Nighttime, Rate: bill.NighttimeRate},
		)
	}
	return doc
}

// Title "Monthly Bill for <name> (ID: <id>)".
func (d BillDocument) Title() string {
	return fmt.Sprintf("Monthly Bill for %s (ID: %s)", d.CustomerName, d.CustomerID)
}

// UsageLines texto de cada línea del detalle.
func (d BillDocument) UsageLines() []string {
	out := make([]string, 0, len(d.Usage))
	for _, u := range d.Usage {
		out = append(out, fmt.Sprintf("Usage on %s: %d kWh @ %s %s/kWh", u.Label, u.KWh, u.Rate.String(), d.Currency))
	}
	return out
}

// TotalLines totales diurno, nocturno y costo; van resaltados en negrita.
func (d BillDocument) TotalLines() []string {
	return []string{
		fmt.Sprintf("Daytime Total Usage: %d kWh @ %s %s/kWh", d.DaytimeTotal, d.DaytimeRate.String(), d.Currency),
		fmt.Sprintf("Nighttime Total Usage: %d kWh @ %s %s/kWh", d.NighttimeTotal, d.NighttimeRate.String(), d.Currency),
		d.TotalCostLine(),
	}
}

// TotalCostLine "Total Cost: 8.25 BGN".
func (d BillDocument) TotalCostLine() string {
	return fmt.Sprintf("Total Cost: %s %s", d.TotalCost.StringFixed(2), d.Currency)
}
