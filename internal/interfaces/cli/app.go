// Package cli expone el job de facturación mensual como aplicación de línea de comandos.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tsvetanka/ERP-Billing/internal/application/billing"
	"github.com/tsvetanka/ERP-Billing/internal/domain/pricing"
	"github.com/tsvetanka/ERP-Billing/internal/infrastructure/flatfile"
	"github.com/tsvetanka/ERP-Billing/internal/infrastructure/html"
	"github.com/tsvetanka/ERP-Billing/internal/infrastructure/pdf"
	"github.com/tsvetanka/ERP-Billing/internal/infrastructure/postgres"
	"github.com/tsvetanka/ERP-Billing/internal/infrastructure/report"
	"github.com/tsvetanka/ERP-Billing/internal/infrastructure/xlsx"
	"github.com/tsvetanka/ERP-Billing/internal/observability/metrics"
	"github.com/tsvetanka/ERP-Billing/pkg/config"
	"github.com/tsvetanka/ERP-Billing/pkg/logger"
)

const pingTimeout = 10 * time.Second

// NewApp arma la aplicación. Sin argumentos ejecuta el ciclo completo con la configuración
// de entorno; los flags sólo sobrescriben valores puntuales.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:    "monthly-bill",
		Usage:   "Factura el consumo eléctrico mensual de cada cliente",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Archivo de configuración (env, yaml, json)",
				EnvVars: []string{"BILLING_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Nivel de log (trace, debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Formato de factura (pdf, html, xlsx)",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directorio de las facturas generadas",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Genera facturas sin escribir en la base de datos",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Muestra una barra de progreso en stderr",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, cfg)
	if err := cfg.Billing.Validate(); err != nil {
		return err
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: c.App.Writer})
	recorder := metrics.NewRecorder()

	uc, err := buildUseCase(c.Context, cfg, log, recorder, c.App.ErrWriter)
	if err != nil {
		return err
	}

	rep, runErr := uc.Run(c.Context)

	if rep != nil && cfg.Billing.ReportPath != "" {
		if err := report.WriteYAML(cfg.Billing.ReportPath, rep); err != nil {
			log.Error().Err(err).Msg("no se pudo guardar el reporte")
		}
	}
	if cfg.Billing.MetricsPath != "" {
		if err := recorder.WriteTextfile(cfg.Billing.MetricsPath); err != nil {
			log.Error().Err(err).Msg("no se pudieron guardar las métricas")
		}
	}
	if runErr != nil && !errors.Is(runErr, billing.ErrPartialRun) {
		log.Error().Err(runErr).Msg("facturación abortada")
	}
	return runErr
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("log-level") {
		cfg.App.LogLevel = c.String("log-level")
	}
	if c.IsSet("format") {
		cfg.Billing.Format = strings.ToLower(c.String("format"))
	}
	if c.IsSet("output-dir") {
		cfg.Billing.OutputDir = c.String("output-dir")
	}
	if c.IsSet("dry-run") {
		cfg.Billing.DryRun = c.Bool("dry-run")
	}
	if c.IsSet("progress") {
		cfg.Billing.Progress = c.Bool("progress")
	}
}

// buildUseCase conecta los adaptadores según la configuración.
func buildUseCase(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	recorder *metrics.Recorder,
	progressOut io.Writer,
) (*billing.MonthlyBillUseCase, error) {
	enc, err := flatfile.LookupEncoding(cfg.Billing.InputEncoding)
	if err != nil {
		return nil, err
	}
	tariff, err := pricing.ParseTariff(cfg.Billing.DaytimeRate, cfg.Billing.NighttimeRate)
	if err != nil {
		return nil, err
	}
	renderer, err := newRenderer(cfg.Billing.Format, cfg.App.Name)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("encoding", enc.Name()).
		Str("format", renderer.Extension()).
		Str("daytime_rate", tariff.DaytimeRate.String()).
		Str("nighttime_rate", tariff.NighttimeRate.String()).
		Msg("configuración cargada")

	deps := billing.MonthlyBillDeps{
		Lookups:   flatfile.NewLookupReader(enc, log),
		Records:   flatfile.NewUsageReader(enc),
		RawWriter: flatfile.NewRawWriter(enc),
		Renderer:  renderer,
		Artifacts: flatfile.NewArtifactStore(cfg.Billing.OutputDir),
		Recorder:  recorder,
		Log:       log,
	}
	if cfg.Billing.Progress {
		if progressOut == nil {
			progressOut = os.Stderr
		}
		deps.Progress = newProgressBar(progressOut)
	}

	if !cfg.Billing.DryRun {
		connector, err := postgres.NewConnector(cfg.DB)
		if err != nil {
			return nil, err
		}
		// Sin base el lote sigue: archivos y facturas se generan y cada fila fallida queda en el reporte.
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := connector.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("base de datos no disponible; las filas de MonthlyBill fallarán")
		}
		deps.Bills = postgres.NewMonthlyBillRepository(connector)
	} else {
		log.Warn().Msg("dry-run: no se escribirá en MonthlyBill")
	}

	return billing.NewMonthlyBillUseCase(deps, billing.MonthlyBillConfig{
		Paths: billing.Paths{
			Lookup:    cfg.Billing.LookupPath,
			Input:     cfg.Billing.InputPath,
			Invalid:   cfg.Billing.InvalidPath,
			Estimated: cfg.Billing.EstimatedPath,
		},
		Tariff:   tariff,
		Currency: cfg.Billing.Currency,
	})
}

func newRenderer(format, author string) (billing.BillRenderer, error) {
	switch format {
	case config.FormatPDF:
		return pdf.NewMarotoPDFGenerator(author), nil
	case config.FormatHTML:
		return html.NewBillGenerator(), nil
	case config.FormatXLSX:
		return xlsx.NewExcelizeBillGenerator(), nil
	default:
		return nil, fmt.Errorf("formato de factura desconocido: %q", format)
	}
}
