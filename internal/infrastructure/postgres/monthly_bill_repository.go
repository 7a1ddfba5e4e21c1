package postgres

import (
	"context"
	"fmt"

	"github.com/tsvetanka/ERP-Billing/internal/domain"
	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
	"github.com/tsvetanka/ERP-Billing/internal/domain/repository"
)

var _ repository.MonthlyBillRepository = (*MonthlyBillRepo)(nil)

const insertMonthlyBill = `
	INSERT INTO MonthlyBill (customerid, customername, daytimeusageintotal, nighttimeusageintotal, totalcost)
	VALUES ($1, $2, $3, $4, $5)`

// MonthlyBillRepo implementación de MonthlyBillRepository: una conexión por fila.
type MonthlyBillRepo struct {
	connector *Connector
}

// NewMonthlyBillRepository construye el adaptador.
func NewMonthlyBillRepository(connector *Connector) *MonthlyBillRepo {
	return &MonthlyBillRepo{connector: connector}
}

// Insert abre conexión, ejecuta un INSERT y cierra. Reejecutar el job duplica filas.
func (r *MonthlyBillRepo) Insert(ctx context.Context, bill *entity.MonthlyBill) error {
	if bill == nil {
		return fmt.Errorf("%w: fila nula", domain.ErrInvalidInput)
	}
	conn, err := r.connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(ctx) }()

	_, err = conn.Exec(ctx, insertMonthlyBill,
		bill.CustomerID, bill.CustomerName,
		bill.DaytimeUsageInTotal, bill.NighttimeUsageInTotal,
		bill.TotalCost,
	)
	if err != nil {
		if isUndefinedTable(err) {
			return fmt.Errorf("%w: tabla MonthlyBill: %v", domain.ErrNotFound, err)
		}
		return describePgError("insert monthly bill", err)
	}
	return nil
}
