package flatfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsvetanka/ERP-Billing/internal/domain"
	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
	"github.com/tsvetanka/ERP-Billing/pkg/logger"
)

// LookupReader carga el archivo customerId,customerName.
type LookupReader struct {
	enc Encoding
	log *logger.Logger
}

// NewLookupReader construye el lector.
func NewLookupReader(enc Encoding, log *logger.Logger) *LookupReader {
	return &LookupReader{enc: enc, log: log}
}

// Load lee el lookup completo. Se separa por la primera coma, así el nombre puede contener comas.
// Una línea sin coma invalida todo el archivo: un lookup parcial no es utilizable.
// IDs repetidos: gana la última aparición.
func (r *LookupReader) Load(ctx context.Context, path string) (entity.CustomerLookup, error) {
	lookup := make(entity.CustomerLookup)
	err := eachLine(ctx, path, r.enc, func(lineNo int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		id, name, ok := strings.Cut(line, ",")
		if !ok {
			return fmt.Errorf("%w: lookup %s línea %d sin separador", domain.ErrInvalidInput, path, lineNo)
		}
		if prev, dup := lookup[id]; dup && r.log != nil {
			r.log.Warn().
				Str("customer_id", id).
				Str("previous_name", prev).
				Str("name", name).
				Int("line", lineNo).
				Msg("ID repetido en lookup; se usa la última aparición")
		}
		lookup[id] = name
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cargar lookup: %w", err)
	}
	return lookup, nil
}
