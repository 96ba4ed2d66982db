package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type StoreMetrics struct {
	OperationDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	StatusUpdatesTotal *prometheus.CounterVec
	AlertsTotal        prometheus.Counter
	CustomersByStatus  *prometheus.GaugeVec
}

var (
	Store = StoreMetrics{
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_risk_store_operation_duration_seconds",
				Help:    "Histogram of customer store operation latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"backend", "operation", "status"},
		),
	}

	Business = BusinessMetrics{
		StatusUpdatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_risk_status_updates_total",
				Help: "Total number of persisted customer status updates.",
			},
			[]string{"status"},
		),
		AlertsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_risk_alerts_total",
				Help: "Total number of high-risk alerts accepted.",
			},
		),
		CustomersByStatus: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "credit_risk_customers",
				Help: "Number of customers per status at the last summary run.",
			},
			[]string{"status"},
		),
	}
)

func RecordStoreOperation(backend, operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	Store.OperationDuration.WithLabelValues(backend, operation, status).Observe(duration.Seconds())
}

func RecordStatusUpdate(status string) {
	Business.StatusUpdatesTotal.WithLabelValues(status).Inc()
}

func RecordAlert() {
	Business.AlertsTotal.Inc()
}

func SetCustomersByStatus(status string, count int) {
	Business.CustomersByStatus.WithLabelValues(status).Set(float64(count))
}
