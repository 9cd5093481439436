package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the pricefeed module
type Metrics struct {
	UpdatesAccepted   prometheus.Counter
	UpdatesRejected   *prometheus.CounterVec
	DeviationRejected *prometheus.CounterVec
	LastPrice         *prometheus.GaugeVec
	FeesCollected     prometheus.Counter
	UpdateLatency     prometheus.Histogram
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers pricefeed metrics (singleton pattern)
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			UpdatesAccepted: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "pricefeed",
				Name:      "updates_accepted_total",
				Help:      "Number of feed values accepted into the price store",
			}),
			UpdatesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "pricefeed",
				Name:      "updates_rejected_total",
				Help:      "Number of rejected update submissions by reason",
			}, []string{"reason"}),
			DeviationRejected: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "pricefeed",
				Name:      "deviation_rejections_total",
				Help:      "Number of deviation-bound rejections by feed",
			}, []string{"feed_id"}),
			LastPrice: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "pricefeed",
				Name:      "last_price",
				Help:      "Last accepted price per feed (unscaled)",
			}, []string{"feed_id"}),
			FeesCollected: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "pricefeed",
				Name:      "fees_collected_total",
				Help:      "Total update fees collected",
			}),
			UpdateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: "pricefeed",
				Name:      "update_latency_seconds",
				Help:      "Latency of price update submissions",
				Buckets:   prometheus.DefBuckets,
			}),
		}
	})
	return metrics
}
