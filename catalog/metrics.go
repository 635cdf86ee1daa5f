package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Listing modes, used as the "mode" label.
const (
	modeKeyset = "keyset"
	modeOffset = "offset"
)

// Metrics holds the collectors of the catalog service.
type Metrics struct {
	// ListDuration is the latency of list queries by entity and mode.
	ListDuration *prometheus.HistogramVec
	// ListRows is the number of rows returned per page.
	ListRows *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg. A nil reg registers with
// the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ListDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_list_duration_seconds",
				Help:    "Latency of catalog list queries in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"entity", "mode"},
		),
		ListRows: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_list_rows",
				Help:    "Rows returned per catalog page",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
			[]string{"entity", "mode"},
		),
	}
}

func (m *Metrics) observe(entity, mode string, seconds float64, rows int) {
	if m == nil {
		return
	}

	m.ListDuration.WithLabelValues(entity, mode).Observe(seconds)
	m.ListRows.WithLabelValues(entity, mode).Observe(float64(rows))
}
