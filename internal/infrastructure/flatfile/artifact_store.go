package flatfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsvetanka/ERP-Billing/internal/domain"
)

// ArtifactStore guarda las facturas renderizadas en un directorio.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore construye el almacén. El directorio se crea al primer Save.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir}
}

// Save escribe data como dir/name (sobrescribe) y devuelve la ruta final.
func (s *ArtifactStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == ".." {
		return "", fmt.Errorf("%w: nombre de artefacto %q", domain.ErrInvalidInput, name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("guardar %s: %w", path, err)
	}
	return path, nil
}
