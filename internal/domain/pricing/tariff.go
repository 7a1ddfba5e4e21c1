// Package pricing aplica las tarifas fijas diurna y nocturna con aritmética decimal exacta.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tsvetanka/ERP-Billing/internal/domain"
)

// Tariff precios por kWh.
type Tariff struct {
	DaytimeRate   decimal.Decimal
	NighttimeRate decimal.Decimal
}

// ParseTariff construye la tarifa desde texto (ej. "0.15", "0.05"). Rechaza valores no numéricos o negativos.
func ParseTariff(daytime, nighttime string) (Tariff, error) {
	day, err := decimal.NewFromString(daytime)
	if err != nil {
		return Tariff{}, fmt.Errorf("%w: tarifa diurna %q: %v", domain.ErrInvalidInput, daytime, err)
	}
	night, err := decimal.NewFromString(nighttime)
	if err != nil {
		return Tariff{}, fmt.Errorf("%w: tarifa nocturna %q: %v", domain.ErrInvalidInput, nighttime, err)
	}
	if day.IsNegative() || night.IsNegative() {
		return Tariff{}, fmt.Errorf("%w: las tarifas no pueden ser negativas", domain.ErrInvalidInput)
	}
	return Tariff{DaytimeRate: day, NighttimeRate: night}, nil
}

// Cost = daytime * DaytimeRate + nighttime * NighttimeRate.
func (t Tariff) Cost(daytime, nighttime int64) decimal.Decimal {
	dayCost := decimal.NewFromInt(daytime).Mul(t.DaytimeRate)
	nightCost := decimal.NewFromInt(nighttime).Mul(t.NighttimeRate)
	return dayCost.Add(nightCost)
}
