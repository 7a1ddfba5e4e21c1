// Package report guarda el RunReport de cada ejecución en YAML.
package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsvetanka/ERP-Billing/internal/application/billing"
)

// WriteYAML sobrescribe path con el reporte.
func WriteYAML(path string, r *billing.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear reporte %s: %w", path, err)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		_ = f.Close()
		return fmt.Errorf("codificar reporte: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("codificar reporte: %w", err)
	}
	return f.Close()
}

// ReadYAML lee un reporte guardado.
func ReadYAML(path string) (*billing.RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer reporte %s: %w", path, err)
	}
	var r billing.RunReport
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decodificar reporte: %w", err)
	}
	return &r, nil
}
