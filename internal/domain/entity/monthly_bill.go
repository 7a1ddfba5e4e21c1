package entity

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tsvetanka/ERP-Billing/internal/domain"
)

// Bill factura transitoria de un cliente: existe solo para renderizarse y persistirse.
type Bill struct {
	CustomerID    string
	CustomerName  string
	Summary       UsageSummary
	DaytimeRate   decimal.Decimal
	NighttimeRate decimal.Decimal
	Currency      string
	TotalCost     decimal.Decimal
}

// MonthlyBill fila de la tabla MonthlyBill.
type MonthlyBill struct {
	CustomerID            int32
	CustomerName          string
	DaytimeUsageInTotal   int64
	NighttimeUsageInTotal int64
	TotalCost             decimal.Decimal
}

// NewMonthlyBill construye la fila a persistir. customerid y los dos totales son columnas
// integer (int32): un ID no numérico o un total fuera de rango es una entrada inválida.
func NewMonthlyBill(bill *Bill) (*MonthlyBill, error) {
	id, err := strconv.ParseInt(bill.CustomerID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: customerid %q no es entero", domain.ErrInvalidInput, bill.CustomerID)
	}
	if bill.Summary.DaytimeTotal > math.MaxInt32 {
		return nil, fmt.Errorf("%w: consumo diurno %d excede integer", domain.ErrInvalidInput, bill.Summary.DaytimeTotal)
	}
	if bill.Summary.NighttimeTotal > math.MaxInt32 {
		return nil, fmt.Errorf("%w: consumo nocturno %d excede integer", domain.ErrInvalidInput, bill.Summary.NighttimeTotal)
	}
	return &MonthlyBill{
		CustomerID:            int32(id),
		CustomerName:          bill.CustomerName,
		DaytimeUsageInTotal:   bill.Summary.DaytimeTotal,
		NighttimeUsageInTotal: bill.Summary.NighttimeTotal,
		TotalCost:             bill.TotalCost,
	}, nil
}
