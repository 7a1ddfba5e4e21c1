package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "monthly_bill_"

const (
	resultSuccess = "success"
	resultError   = "error"
)

// Recorder contadores de una ejecución del job. Cada Recorder tiene su propio registry,
// que se vuelca a un textfile para el textfile collector de node_exporter.
type Recorder struct {
	registry *prometheus.Registry

	records       *prometheus.CounterVec
	customers     *prometheus.CounterVec
	runDuration   *prometheus.GaugeVec
	lastRunTime   prometheus.Gauge
	lastRunResult prometheus.Gauge
}

// NewRecorder registra las métricas del job.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_total",
				Help: "Usage records read by kind (valid, invalid, estimated)",
			},
			[]string{"kind"},
		),
		customers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "customers_total",
				Help: "Customers processed by outcome",
			},
			[]string{"outcome"},
		),
		runDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "run_duration_seconds",
				Help: "Duration of the last run in seconds",
			},
			[]string{"result"},
		),
		lastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "last_run_timestamp_seconds",
			Help: "Unix time when the last run finished",
		}),
		lastRunResult: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "last_run_success",
			Help: "1 if the last run billed every matched customer",
		}),
	}
	r.registry.MustRegister(r.records, r.customers, r.runDuration, r.lastRunTime, r.lastRunResult)
	return r
}

// ObserveRecords suma los registros leídos.
func (r *Recorder) ObserveRecords(valid, invalid, estimated int) {
	r.records.WithLabelValues("valid").Add(float64(valid))
	r.records.WithLabelValues("invalid").Add(float64(invalid))
	r.records.WithLabelValues("estimated").Add(float64(estimated))
}

// ObserveCustomer cuenta un cliente por resultado (billed, unmatched, failed).
func (r *Recorder) ObserveCustomer(outcome string) {
	r.customers.WithLabelValues(outcome).Inc()
}

// ObserveRun registra duración y resultado de la ejecución.
func (r *Recorder) ObserveRun(duration time.Duration, failed bool) {
	result := resultSuccess
	success := 1.0
	if failed {
		result = resultError
		success = 0
	}
	r.runDuration.WithLabelValues(result).Set(duration.Seconds())
	r.lastRunTime.SetToCurrentTime()
	r.lastRunResult.Set(success)
}

// Registry expone el registry (tests, push).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile vuelca las métricas al archivo en formato de exposición de texto.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("escribir métricas %s: %w", path, err)
	}
	return nil
}
