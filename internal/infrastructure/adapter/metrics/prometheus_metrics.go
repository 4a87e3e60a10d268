package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// PrometheusMetrics exports ledger and HTTP measurements on its own registry
type PrometheusMetrics struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	settlementsTotal  prometheus.Counter
	settlementWinners prometheus.Histogram
	payoutFailures    prometheus.Counter
	payoutTotal       prometheus.Counter

	outboxDeliveries *prometheus.CounterVec

	poolOpen  prometheus.Gauge
	poolInUse prometheus.Gauge
	poolIdle  prometheus.Gauge

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewPrometheusMetrics registers all collectors under namespace
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),

		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger operations by name and result",
		}, []string{"operation", "result"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_ms",
			Help:      "Ledger operation latency in milliseconds",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 10),
		}, []string{"operation", "result"}),

		settlementsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Rounds settled",
		}),
		settlementWinners: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_winners",
			Help:      "Winning bets credited per settled round",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		payoutFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_failures_total",
			Help:      "Payouts skipped during settlement",
		}),
		payoutTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_amount_total",
			Help:      "Sum of credited payouts in minor units",
		}),

		outboxDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_deliveries_total",
			Help:      "Ledger events delivered from the outbox by result",
		}, []string{"result"}),

		poolOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_open_connections",
			Help:      "Open database connections",
		}),
		poolInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_in_use_connections",
			Help:      "Database connections in use",
		}),
		poolIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_idle_connections",
			Help:      "Idle database connections",
		}),

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 10),
		}, []string{"method", "path"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operationsTotal,
		m.operationDuration,
		m.settlementsTotal,
		m.settlementWinners,
		m.payoutFailures,
		m.payoutTotal,
		m.outboxDeliveries,
		m.poolOpen,
		m.poolInUse,
		m.poolIdle,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	return m
}

// RecordOperation implements core.Metrics
func (m *PrometheusMetrics) RecordOperation(operation, result string, elapsed coreport.Duration) {
	m.operationsTotal.WithLabelValues(operation, result).Inc()
	m.operationDuration.WithLabelValues(operation, result).Observe(float64(elapsed.Milliseconds()))
}

// RecordSettlement implements core.Metrics
func (m *PrometheusMetrics) RecordSettlement(winners, failures int, totalPayout int64) {
	m.settlementsTotal.Inc()
	m.settlementWinners.Observe(float64(winners))
	m.payoutFailures.Add(float64(failures))
	if totalPayout > 0 {
		m.payoutTotal.Add(float64(totalPayout))
	}
}

// RecordOutboxDelivery implements core.Metrics
func (m *PrometheusMetrics) RecordOutboxDelivery(result string, count int) {
	if count <= 0 {
		return
	}
	m.outboxDeliveries.WithLabelValues(result).Add(float64(count))
}

// SetPoolStats implements core.Metrics
func (m *PrometheusMetrics) SetPoolStats(open, inUse, idle int) {
	m.poolOpen.Set(float64(open))
	m.poolInUse.Set(float64(inUse))
	m.poolIdle.Set(float64(idle))
}

// RecordHTTPRequest observes one served request; path is the route template
func (m *PrometheusMetrics) RecordHTTPRequest(method, path string, status int, elapsed coreport.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(float64(elapsed.Milliseconds()))
}

// Registry exposes the underlying registry
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
