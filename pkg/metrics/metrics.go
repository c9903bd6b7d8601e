package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы операций для лейбла outcome
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics набор Prometheus-метрик сервиса.
// Метрики собираются в собственный registry и выгружаются в textfile для node_exporter.
type Metrics struct {
	registry *prometheus.Registry

	CommandsTotal            *prometheus.CounterVec
	CommandDuration          *prometheus.HistogramVec
	StorageOperationsTotal   *prometheus.CounterVec
	StorageOperationDuration *prometheus.HistogramVec
	ReservationOutcomesTotal *prometheus.CounterVec
	TransactionRetriesTotal  prometheus.Counter
}

// New создает и регистрирует метрики с константным лейблом service
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "smc_commands_total",
			Help:        "Number of executed CLI commands by outcome",
			ConstLabels: constLabels,
		}, []string{"command", "outcome"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "smc_command_duration_seconds",
			Help:        "CLI command execution time",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"command"}),
		StorageOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "smc_storage_operations_total",
			Help:        "Number of document storage operations by backend and status",
			ConstLabels: constLabels,
		}, []string{"backend", "operation", "status"}),
		StorageOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "smc_storage_operation_duration_seconds",
			Help:        "Document storage operation latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"backend", "operation"}),
		ReservationOutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "smc_reservation_outcomes_total",
			Help:        "Booking engine mutations by operation and outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		TransactionRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "smc_transaction_retries_total",
			Help:        "Serializable transaction retries caused by version conflicts",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(
		m.CommandsTotal,
		m.CommandDuration,
		m.StorageOperationsTotal,
		m.StorageOperationDuration,
		m.ReservationOutcomesTotal,
		m.TransactionRetriesTotal,
	)

	return m
}

// Registry возвращает registry с метриками сервиса
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCommand записывает длительность и исход команды
func (m *Metrics) ObserveCommand(command, outcome string, started time.Time) {
	m.CommandsTotal.WithLabelValues(command, outcome).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(time.Since(started).Seconds())
}

// ObserveStorage записывает длительность и статус операции хранилища
func (m *Metrics) ObserveStorage(backend, operation string, err error, started time.Time) {
	status := OutcomeSuccess
	if err != nil {
		status = OutcomeError
	}
	m.StorageOperationsTotal.WithLabelValues(backend, operation, status).Inc()
	m.StorageOperationDuration.WithLabelValues(backend, operation).Observe(time.Since(started).Seconds())
}

// ObserveReservation записывает исход Book/Cancel
func (m *Metrics) ObserveReservation(operation, outcome string) {
	m.ReservationOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveRetry увеличивает счетчик повторов транзакций
func (m *Metrics) ObserveRetry() {
	m.TransactionRetriesTotal.Inc()
}

// WriteToTextfile атомарно выгружает метрики в файл формата node_exporter textfile collector
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write textfile %s: %w", path, err)
	}
	return nil
}
