package repository

import (
	"context"

	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
)

// MonthlyBillRepository define el puerto de persistencia para el resumen mensual de cada cliente.
// Cada Insert agrega una fila nueva; no hay upsert.
type MonthlyBillRepository interface {
	Insert(ctx context.Context, bill *entity.MonthlyBill) error
}
