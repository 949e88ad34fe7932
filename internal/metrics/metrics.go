package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RecordsProcessed *prometheus.CounterVec
	APIErrors        prometheus.Counter
	RequestSeconds   *prometheus.HistogramVec
	ActiveRuns       prometheus.Gauge
	RunsStarted      prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RecordsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_records_processed_total",
			Help: "Total number of processed address records.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveRuns: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "pipeline_active_runs",
			Help: "Current number of pipeline runs in progress.",
		}),
		RunsStarted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "pipeline_runs_started_total",
			Help: "Total number of pipeline runs started.",
		}),
	}
}
