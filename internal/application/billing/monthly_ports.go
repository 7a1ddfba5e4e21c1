package billing

import (
	"context"
	"time"

	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
)

// LookupLoader carga el lookup de clientes.
type LookupLoader interface {
	Load(ctx context.Context, path string) (entity.CustomerLookup, error)
}

// RecordLoader carga y valida el archivo de registros de consumo.
type RecordLoader interface {
	Load(ctx context.Context, path string) (entity.RecordSet, error)
}

// RawRecordWriter sobrescribe un archivo con registros crudos (inválidos o estimados).
type RawRecordWriter interface {
	Write(ctx context.Context, path string, records []entity.RawRecord) error
}

// BillRenderer genera el documento imprimible de una factura.
// Extension es la extensión del artefacto sin punto (pdf, html, xlsx).
type BillRenderer interface {
	Render(ctx context.Context, bill *entity.Bill) ([]byte, error)
	Extension() string
}

// ArtifactStore guarda el documento renderizado y devuelve su ubicación.
type ArtifactStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// ProgressTracker avance por cliente; opcional.
type ProgressTracker interface {
	Start(total int)
	Advance()
	Finish()
}

// RunRecorder recibe los contadores de la ejecución (métricas); opcional.
type RunRecorder interface {
	ObserveRecords(valid, invalid, estimated int)
	ObserveCustomer(outcome string)
	ObserveRun(duration time.Duration, failed bool)
}
