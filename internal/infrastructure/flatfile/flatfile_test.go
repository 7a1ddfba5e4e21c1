package flatfile_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/tsvetanka/ERP-Billing/internal/domain"
	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
	"github.com/tsvetanka/ERP-Billing/internal/infrastructure/flatfile"
	"github.com/tsvetanka/ERP-Billing/pkg/logger"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ──────────────────────────────────────────────────────────────────────────────
// Lookup
// ──────────────────────────────────────────────────────────────────────────────

func TestLookupReader_Load(t *testing.T) {
	path := writeFile(t, "lookup.txt", "1001,Alice\n\n1002,Bob, Jr.\r\n   \n1003,Carol\n")
	r := flatfile.NewLookupReader(flatfile.UTF8, logger.Nop())

	lookup, err := r.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, entity.CustomerLookup{
		"1001": "Alice",
		"1002": "Bob, Jr.",
		"1003": "Carol",
	}, lookup)
}

func TestLookupReader_UltimaAparicionGana(t *testing.T) {
	path := writeFile(t, "lookup.txt", "1001,Alice\n1001,Alicia\n")
	lookup, err := flatfile.NewLookupReader(flatfile.UTF8, logger.Nop()).Load(context.Background(), path)
	require.NoError(t, err)

	name, ok := lookup.Name("1001")
	assert.True(t, ok)
	assert.Equal(t, "Alicia", name)
}

func TestLookupReader_LineaSinSeparadorEsFatal(t *testing.T) {
	path := writeFile(t, "lookup.txt", "1001,Alice\nbroken\n")
	_, err := flatfile.NewLookupReader(flatfile.UTF8, logger.Nop()).Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "línea 2")
}

func TestLookupReader_ArchivoInexistente(t *testing.T) {
	_, err := flatfile.NewLookupReader(flatfile.UTF8, logger.Nop()).
		Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLookupReader_DescartaBOM(t *testing.T) {
	path := writeFile(t, "lookup.txt", "\ufeff1001,Alice\n")
	lookup, err := flatfile.NewLookupReader(flatfile.UTF8, logger.Nop()).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, lookup, "1001")
}

func TestLookupReader_Windows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("1001,Иван Петров\n")
	require.NoError(t, err)
	path := writeFile(t, "lookup.txt", encoded)

	enc, err := flatfile.LookupEncoding("windows-1251")
	require.NoError(t, err)
	lookup, err := flatfile.NewLookupReader(enc, logger.Nop()).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Иван Петров", lookup["1001"])
}

func TestLookupEncoding_Desconocida(t *testing.T) {
	_, err := flatfile.LookupEncoding("ebcdic")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registros de consumo
// ──────────────────────────────────────────────────────────────────────────────

func TestUsageReader_Escenario1001(t *testing.T) {
	path := writeFile(t, "input.txt", "1001,Jan,10,20,30,5,A\n1001,Feb,0,0,0,-1,A\n")

	set, err := flatfile.NewUsageReader(flatfile.UTF8).Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, set.Valid["1001"], 1)
	assert.Equal(t, "Jan", set.Valid["1001"][0].Label)
	require.Len(t, set.Invalid, 1)
	assert.Equal(t, "1001,Feb,0,0,0,-1,A", set.Invalid[0].Fields.String())
	assert.Equal(t, 2, set.Invalid[0].Line)
	assert.Equal(t, "negative_reading", set.Invalid[0].Reason)
	assert.Empty(t, set.Estimated)
}

func TestUsageReader_EstimadosSeparados(t *testing.T) {
	path := writeFile(t, "input.txt", "1001,Jan,10,20,30,5,E\n1002,Jan,1,1,1,1,A\n")

	set, err := flatfile.NewUsageReader(flatfile.UTF8).Load(context.Background(), path)
	require.NoError(t, err)

	assert.NotContains(t, set.Valid, "1001")
	require.Len(t, set.Estimated, 1)
	assert.Equal(t, "1001,Jan,10,20,30,5,E", set.Estimated[0].String())
	assert.Equal(t, []string{"1002"}, set.CustomerOrder)
}

// Cada línea no vacía aparece en exactamente una de las tres colecciones.
func TestUsageReader_Particion(t *testing.T) {
	lines := []string{
		"1001,Jan,10,20,30,5,A",
		"",
		"1002,Jan,1,2,3,4,E",
		"1003,Jan,1,2,3,4,Q",
		"   ",
		"1001,Feb,1,2,3,4,A",
		"1004,Jan,1,2,3",
		"1004,Jan,1,2,3,4,A,extra",
		"1005,Mar,0,0,0,0,A",
		"1003,Feb,x,2,3,4,E",
	}
	path := writeFile(t, "input.txt", strings.Join(lines, "\n")+"\n")

	set, err := flatfile.NewUsageReader(flatfile.UTF8).Load(context.Background(), path)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, recs := range set.Valid {
		for _, r := range recs {
			seen[strings.Join([]string{r.CustomerID, r.Label}, "|")]++
		}
	}
	for _, r := range set.Invalid {
		seen[r.Fields.String()]++
	}
	for _, r := range set.Estimated {
		seen[r.String()]++
	}

	nonBlank := 0
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonBlank++
		}
	}
	total := set.ValidCount() + len(set.Invalid) + len(set.Estimated)
	assert.Equal(t, nonBlank, total)
	for k, n := range seen {
		assert.Equal(t, 1, n, "duplicado: %s", k)
	}
	assert.Equal(t, 3, set.ValidCount())
	assert.Len(t, set.Invalid, 4)
	assert.Len(t, set.Estimated, 1)
	assert.Equal(t, []string{"1001", "1005"}, set.CustomerOrder)
}

func TestUsageReader_ConservaOrdenDelArchivo(t *testing.T) {
	path := writeFile(t, "input.txt", "2,a,1,1,1,1,A\n1,a,1,1,1,1,A\n2,b,1,1,1,1,A\n")
	set, err := flatfile.NewUsageReader(flatfile.UTF8).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "1"}, set.CustomerOrder)
	require.Len(t, set.Valid["2"], 2)
	assert.Equal(t, "a", set.Valid["2"][0].Label)
	assert.Equal(t, "b", set.Valid["2"][1].Label)
}

func TestUsageReader_ArchivoInexistente(t *testing.T) {
	_, err := flatfile.NewUsageReader(flatfile.UTF8).Load(context.Background(), filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escritura de crudos
// ──────────────────────────────────────────────────────────────────────────────

func TestRawWriter_IdaYVuelta(t *testing.T) {
	original := []entity.RawRecord{
		{"1001", "Feb", "0", "0", "0", "-1", "A"},
		{"1004", "Jan", "1", "2", "3"},
		{"1004", "Jan", "1", "2", "3", "4", "A", "extra"},
		{"garbage"},
	}
	path := filepath.Join(t.TempDir(), "invalid_records.txt")
	require.NoError(t, os.WriteFile(path, []byte("contenido previo\n"), 0o644))

	w := flatfile.NewRawWriter(flatfile.UTF8)
	require.NoError(t, w.Write(context.Background(), path, original))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, got, len(original))
	for i, line := range got {
		assert.Equal(t, original[i], entity.RawRecord(strings.Split(line, ",")))
	}

	// Releído por el lector de consumos, todo vuelve a ser inválido con los mismos campos.
	set, err := flatfile.NewUsageReader(flatfile.UTF8).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, original, set.InvalidRaw())
}

func TestRawWriter_ListaVaciaSobrescribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "E_records.txt")
	require.NoError(t, os.WriteFile(path, []byte("viejo\n"), 0o644))

	require.NoError(t, flatfile.NewRawWriter(flatfile.UTF8).Write(context.Background(), path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestRawWriter_Windows1251IdaYVuelta(t *testing.T) {
	enc, err := flatfile.LookupEncoding("windows-1251")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "E_records.txt")
	recs := []entity.RawRecord{{"1001", "Януари", "1", "2", "3", "4", "E"}}

	require.NoError(t, flatfile.NewRawWriter(enc).Write(context.Background(), path, recs))
	set, err := flatfile.NewUsageReader(enc).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, recs, set.Estimated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Artefactos
// ──────────────────────────────────────────────────────────────────────────────

func TestArtifactStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bills")
	store := flatfile.NewArtifactStore(dir)

	path, err := store.Save(context.Background(), "bill_1001.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bill_1001.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestArtifactStore_RechazaRutas(t *testing.T) {
	store := flatfile.NewArtifactStore(t.TempDir())
	for _, name := range []string{"", "../bill.pdf", "a/b.pdf", `a\b.pdf`, ".."} {
		_, err := store.Save(context.Background(), name, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}
