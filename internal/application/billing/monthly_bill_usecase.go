package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tsvetanka/ERP-Billing/internal/domain/entity"
	"github.com/tsvetanka/ERP-Billing/internal/domain/metering"
	"github.com/tsvetanka/ERP-Billing/internal/domain/pricing"
	"github.com/tsvetanka/ERP-Billing/internal/domain/repository"
	"github.com/tsvetanka/ERP-Billing/pkg/logger"
)

// ErrPartialRun la ejecución terminó pero al menos un cliente falló.
var ErrPartialRun = errors.New("facturación incompleta")

// Paths rutas de entrada y salida del job.
type Paths struct {
	Lookup    string
	Input     string
	Invalid   string
	Estimated string
}

// MonthlyBillDeps colaboradores del caso de uso. Bills nil equivale a dry-run.
type MonthlyBillDeps struct {
	Lookups   LookupLoader
	Records   RecordLoader
	RawWriter RawRecordWriter
	Renderer  BillRenderer
	Artifacts ArtifactStore
	Bills     repository.MonthlyBillRepository
	Progress  ProgressTracker
	Recorder  RunRecorder
	Log       *logger.Logger
}

// MonthlyBillConfig parámetros de negocio del job.
type MonthlyBillConfig struct {
	Paths    Paths
	Tariff   pricing.Tariff
	Currency string
}

// MonthlyBillUseCase ejecuta el ciclo mensual: cargar → validar → agregar → tarifar → renderizar/persistir.
type MonthlyBillUseCase struct {
	deps MonthlyBillDeps
	cfg  MonthlyBillConfig
	now  func() time.Time
}

// NewMonthlyBillUseCase construye el caso de uso inyectando todas sus dependencias.
func NewMonthlyBillUseCase(deps MonthlyBillDeps, cfg MonthlyBillConfig) (*MonthlyBillUseCase, error) {
	switch {
	case deps.Lookups == nil:
		return nil, errors.New("billing: falta LookupLoader")
	case deps.Records == nil:
		return nil, errors.New("billing: falta RecordLoader")
	case deps.RawWriter == nil:
		return nil, errors.New("billing: falta RawRecordWriter")
	case deps.Renderer == nil:
		return nil, errors.New("billing: falta BillRenderer")
	case deps.Artifacts == nil:
		return nil, errors.New("billing: falta ArtifactStore")
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return &MonthlyBillUseCase{deps: deps, cfg: cfg, now: time.Now}, nil
}

// Run procesa una ejecución completa.
//
// Retorna:
//   - (report, nil)                    si todos los clientes con lookup se facturaron.
//   - (report, ErrPartialRun envuelto) si algún cliente falló al renderizar o persistir;
//     el resto del lote se procesa igual.
//   - (nil, err)                       si falla la carga de entradas o la escritura de inválidos/estimados.
func (uc *MonthlyBillUseCase) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.New().String(),
		StartedAt: uc.now(),
		DryRun:    uc.deps.Bills == nil,
	}
	log := uc.deps.Log.WithFields(map[string]any{"run_id": report.RunID})
	log.Info().
		Str("lookup", uc.cfg.Paths.Lookup).
		Str("input", uc.cfg.Paths.Input).
		Bool("dry_run", report.DryRun).
		Msg("iniciando facturación mensual")

	// ── 1. Cargar entradas ───────────────────────────────────────────────────
	lookup, err := uc.deps.Lookups.Load(ctx, uc.cfg.Paths.Lookup)
	if err != nil {
		uc.observeRun(report, true)
		return nil, err
	}
	set, err := uc.deps.Records.Load(ctx, uc.cfg.Paths.Input)
	if err != nil {
		uc.observeRun(report, true)
		return nil, err
	}

	// ── 2. Guardar rechazados y estimados ────────────────────────────────────
	if err := uc.deps.RawWriter.Write(ctx, uc.cfg.Paths.Invalid, set.InvalidRaw()); err != nil {
		uc.observeRun(report, true)
		return nil, fmt.Errorf("guardar registros inválidos: %w", err)
	}
	if err := uc.deps.RawWriter.Write(ctx, uc.cfg.Paths.Estimated, set.Estimated); err != nil {
		uc.observeRun(report, true)
		return nil, fmt.Errorf("guardar registros estimados: %w", err)
	}

	report.Records = countRecords(set)
	report.Customers = len(set.CustomerOrder)
	for _, rej := range set.Invalid {
		log.Debug().Int("line", rej.Line).Str("reason", rej.Reason).Str("record", rej.Fields.String()).Msg("registro inválido")
	}
	if uc.deps.Recorder != nil {
		uc.deps.Recorder.ObserveRecords(report.Records.Valid, report.Records.Invalid, report.Records.Estimated)
	}
	log.Info().
		Int("valid", report.Records.Valid).
		Int("invalid", report.Records.Invalid).
		Int("estimated", report.Records.Estimated).
		Int("customers", report.Customers).
		Msg("registros cargados")

	// ── 3. Un cliente a la vez, en orden de aparición ────────────────────────
	if uc.deps.Progress != nil {
		uc.deps.Progress.Start(len(set.CustomerOrder))
	}
	var failures []error
	for _, customerID := range set.CustomerOrder {
		if err := ctx.Err(); err != nil {
			uc.finishProgress()
			uc.observeRun(report, true)
			return report, err
		}
		uc.advanceProgress()

		name, ok := lookup.Name(customerID)
		if !ok {
			report.Unmatched = append(report.Unmatched, customerID)
			uc.observeCustomer(OutcomeUnmatched)
			log.Warn().Str("customer_id", customerID).Msg("cliente sin lookup; no se factura")
			continue
		}

		billed, stage, err := uc.billCustomer(ctx, customerID, name, set.Valid[customerID])
		if err != nil {
			report.Failed = append(report.Failed, CustomerFailure{CustomerID: customerID, Stage: stage, Error: err.Error()})
			failures = append(failures, fmt.Errorf("cliente %s (%s): %w", customerID, stage, err))
			uc.observeCustomer(OutcomeFailed)
			log.Error().Err(err).Str("customer_id", customerID).Str("stage", stage).Msg("factura fallida")
			continue
		}
		report.Billed = append(report.Billed, *billed)
		uc.observeCustomer(OutcomeBilled)
		log.Info().
			Str("customer_id", customerID).
			Int64("daytime_kwh", billed.DaytimeTotal).
			Int64("nighttime_kwh", billed.NighttimeTotal).
			Str("total_cost", billed.TotalCost).
			Str("artifact", billed.Artifact).
			Msg("factura generada")
	}
	uc.finishProgress()

	uc.observeRun(report, len(failures) > 0)
	log.Info().
		Int("billed", len(report.Billed)).
		Int("unmatched", len(report.Unmatched)).
		Int("failed", len(report.Failed)).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("facturación mensual terminada")

	if len(failures) > 0 {
		return report, errors.Join(append([]error{ErrPartialRun}, failures...)...)
	}
	return report, nil
}

// billCustomer agrega, tarifa, renderiza y persiste un cliente. Devuelve la etapa que falló.
// Si el render o el guardado del artefacto fallan no se inserta la fila.
func (uc *MonthlyBillUseCase) billCustomer(
	ctx context.Context,
	customerID, name string,
	records []entity.UsageRecord,
) (*BilledCustomer, string, error) {
	summary := metering.Aggregate(records)
	bill := &entity.Bill{
		CustomerID:    customerID,
		CustomerName:  name,
		Summary:       summary,
		DaytimeRate:   uc.cfg.Tariff.DaytimeRate,
		NighttimeRate: uc.cfg.Tariff.NighttimeRate,
		Currency:      uc.cfg.Currency,
		TotalCost:     uc.cfg.Tariff.Cost(summary.DaytimeTotal, summary.NighttimeTotal),
	}

	doc, err := uc.deps.Renderer.Render(ctx, bill)
	if err != nil {
		return nil, StageRender, err
	}
	artifact, err := uc.deps.Artifacts.Save(ctx, BillArtifactName(customerID, uc.deps.Renderer.Extension()), doc)
	if err != nil {
		return nil, StageArtifact, err
	}

	if uc.deps.Bills != nil {
		row, err := entity.NewMonthlyBill(bill)
		if err != nil {
			return nil, StagePersist, err
		}
		if err := uc.deps.Bills.Insert(ctx, row); err != nil {
			return nil, StagePersist, err
		}
	}

	return &BilledCustomer{
		CustomerID:     customerID,
		CustomerName:   name,
		DaytimeTotal:   summary.DaytimeTotal,
		NighttimeTotal: summary.NighttimeTotal,
		TotalCost:      bill.TotalCost.StringFixed(2),
		Artifact:       artifact,
	}, "", nil
}

// BillArtifactName nombre del documento de un cliente (bill_<id>.<ext>).
func BillArtifactName(customerID, ext string) string {
	return fmt.Sprintf("bill_%s.%s", customerID, ext)
}

func countRecords(set entity.RecordSet) RecordCounts {
	counts := RecordCounts{
		Valid:     set.ValidCount(),
		Invalid:   len(set.Invalid),
		Estimated: len(set.Estimated),
	}
	if len(set.Invalid) > 0 {
		counts.InvalidByReason = make(map[string]int)
		for _, r := range set.Invalid {
			counts.InvalidByReason[r.Reason]++
		}
	}
	return counts
}

func (uc *MonthlyBillUseCase) observeCustomer(outcome string) {
	if uc.deps.Recorder != nil {
		uc.deps.Recorder.ObserveCustomer(outcome)
	}
}

func (uc *MonthlyBillUseCase) observeRun(report *RunReport, failed bool) {
	report.FinishedAt = uc.now()
	if uc.deps.Recorder != nil {
		uc.deps.Recorder.ObserveRun(report.FinishedAt.Sub(report.StartedAt), failed)
	}
}

func (uc *MonthlyBillUseCase) advanceProgress() {
	if uc.deps.Progress != nil {
		uc.deps.Progress.Advance()
	}
}

func (uc *MonthlyBillUseCase) finishProgress() {
	if uc.deps.Progress != nil {
		uc.deps.Progress.Finish()
	}
}
