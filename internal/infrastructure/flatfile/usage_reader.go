package flatfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
	"github.com/tsvetanka/ERP-Billing/internal/domain/metering"
)

// UsageReader carga el archivo de registros de consumo y los reparte en válidos, inválidos y estimados.
type UsageReader struct {
	enc Encoding
}

// NewUsageReader construye el lector.
func NewUsageReader(enc Encoding) *UsageReader {
	return &UsageReader{enc: enc}
}

// Load lee el archivo completo. Las líneas en blanco se ignoran; cada línea restante termina
// exactamente en una de las tres colecciones del RecordSet.
func (r *UsageReader) Load(ctx context.Context, path string) (entity.RecordSet, error) {
	set := entity.NewRecordSet()
	err := eachLine(ctx, path, r.enc, func(lineNo int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		fields := strings.Split(line, ",")
		rec, err := metering.ParseRecord(fields)
		switch {
		case err != nil:
			set.Invalid = append(set.Invalid, entity.RejectedRecord{
				Line:   lineNo,
				Fields: fields,
				Reason: string(metering.ReasonOf(err)),
			})
		case rec.Quality == entity.QualityEstimated:
			set.Estimated = append(set.Estimated, fields)
		default:
			set.AddValid(rec)
		}
		return nil
	})
	if err != nil {
		return entity.RecordSet{}, fmt.Errorf("cargar registros: %w", err)
	}
	return set, nil
}
