package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// describePgError agrega el SQLSTATE y la tabla al mensaje cuando el error viene de PostgreSQL,
// para que el reporte de la ejecución diga por qué falló cada cliente.
func describePgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.TableName != "" {
			return fmt.Errorf("%s: %s (SQLSTATE %s, tabla %s): %w", op, pgErr.Message, pgErr.Code, pgErr.TableName, err)
		}
		return fmt.Errorf("%s: %s (SQLSTATE %s): %w", op, pgErr.Message, pgErr.Code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUndefinedTable 42P01: la tabla MonthlyBill no existe (el job no crea esquema).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
