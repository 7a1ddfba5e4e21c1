package billing

import "time"

// Resultados por cliente.
const (
	OutcomeBilled    = "billed"
	OutcomeUnmatched = "unmatched"
	OutcomeFailed    = "failed"
)

// Etapas en las que puede fallar un cliente.
const (
	StageRender   = "render"
	StageArtifact = "artifact"
	StagePersist  = "persist"
)

// RunReport resumen de una ejecución del job.
type RunReport struct {
	RunID      string            `yaml:"run_id"`
	StartedAt  time.Time         `yaml:"started_at"`
	FinishedAt time.Time         `yaml:"finished_at"`
	DryRun     bool              `yaml:"dry_run"`
	Records    RecordCounts      `yaml:"records"`
	Customers  int               `yaml:"customers"`
	Billed     []BilledCustomer  `yaml:"billed"`
	Unmatched  []string          `yaml:"unmatched"`
	Failed     []CustomerFailure `yaml:"failed"`
}

// RecordCounts contadores del archivo de consumos.
type RecordCounts struct {
	Valid           int            `yaml:"valid"`
	Invalid         int            `yaml:"invalid"`
	Estimated       int            `yaml:"estimated"`
	InvalidByReason map[string]int `yaml:"invalid_by_reason,omitempty"`
}

// BilledCustomer cliente facturado.
type BilledCustomer struct {
	CustomerID     string `yaml:"customer_id"`
	CustomerName   string `yaml:"customer_name"`
	DaytimeTotal   int64  `yaml:"daytime_kwh"`
	NighttimeTotal int64  `yaml:"nighttime_kwh"`
	TotalCost      string `yaml:"total_cost"`
	Artifact       string `yaml:"artifact"`
}

// CustomerFailure cliente que no pudo completarse.
type CustomerFailure struct {
	CustomerID string `yaml:"customer_id"`
	Stage      string `yaml:"stage"`
	Error      string `yaml:"error"`
}

// Succeeded true si ningún cliente falló.
func (r *RunReport) Succeeded() bool {
	return len(r.Failed) == 0
}
