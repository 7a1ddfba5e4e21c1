// Package metering contiene las reglas de dominio para lecturas de medidor:
// validación de registros crudos y agregación diurna/nocturna por cliente.
package metering

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
)

// FieldsPerRecord customerId,label,v0,v1,v2,v3,quality.
const FieldsPerRecord = 7

// RejectReason motivo por el que un registro termina en el archivo de inválidos.
type RejectReason string

const (
	ReasonFieldCount        RejectReason = "field_count"
	ReasonNonNumericReading RejectReason = "non_numeric_reading"
	ReasonNegativeReading   RejectReason = "negative_reading"
	ReasonQualityCode       RejectReason = "quality_code"
)

// ErrInvalidRecord agrupa errores de validación de registros de consumo.
var ErrInvalidRecord = errors.New("registro de consumo inválido")

// RejectError describe el primer problema encontrado en un registro.
type RejectError struct {
	Reason RejectReason
	Detail string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrInvalidRecord, e.Detail, e.Reason)
}

func (e *RejectError) Unwrap() error { return ErrInvalidRecord }

// ParseRecord valida los campos crudos y construye el UsageRecord.
// Exige exactamente 7 campos, cuatro lecturas enteras no negativas y calidad "A" o "E".
func ParseRecord(fields []string) (entity.UsageRecord, error) {
	if len(fields) != FieldsPerRecord {
		return entity.UsageRecord{}, &RejectError{
			Reason: ReasonFieldCount,
			Detail: fmt.Sprintf("se esperaban %d campos, hay %d", FieldsPerRecord, len(fields)),
		}
	}

	rec := entity.UsageRecord{
		CustomerID: fields[0],
		Label:      fields[1],
	}
	for i := 0; i < entity.ReadingsPerRecord; i++ {
		raw := fields[2+i]
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return entity.UsageRecord{}, &RejectError{
				Reason: ReasonNonNumericReading,
				Detail: fmt.Sprintf("lectura %d no es entera: %q", i, raw),
			}
		}
		if v < 0 {
			return entity.UsageRecord{}, &RejectError{
				Reason: ReasonNegativeReading,
				Detail: fmt.Sprintf("lectura %d negativa: %d", i, v),
			}
		}
		rec.Readings[i] = v
	}

	switch q := entity.QualityCode(fields[6]); q {
	case entity.QualityActual, entity.QualityEstimated:
		rec.Quality = q
	default:
		return entity.UsageRecord{}, &RejectError{
			Reason: ReasonQualityCode,
			Detail: fmt.Sprintf("código de calidad desconocido: %q", fields[6]),
		}
	}
	return rec, nil
}

// ReasonOf extrae el motivo de rechazo de un error de ParseRecord.
func ReasonOf(err error) RejectReason {
	var re *RejectError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}
