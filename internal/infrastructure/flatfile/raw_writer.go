package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"golang.org/x/text/transform"

	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
)

// RawWriter escribe registros crudos, uno por línea, separados por comas.
type RawWriter struct {
	enc Encoding
}

// NewRawWriter construye el escritor con la misma codificación que la entrada.
func NewRawWriter(enc Encoding) *RawWriter {
	return &RawWriter{enc: enc}
}

// Write sobrescribe path con los registros. Una lista vacía deja un archivo vacío.
func (w *RawWriter) Write(ctx context.Context, path string, records []entity.RawRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}

	tw := transform.NewWriter(f, w.enc.orDefault().encode.NewEncoder())
	bw := bufio.NewWriter(tw)
	for _, rec := range records {
		if _, err := bw.WriteString(rec.String() + "\n"); err != nil {
			_ = f.Close()
			return fmt.Errorf("escribir %s: %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	if err := tw.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return f.Close()
}
