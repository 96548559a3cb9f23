package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuotesComputedTotal counts finalized quote snapshots.
	QuotesComputedTotal prometheus.Counter
	// QuoteExportTotal counts PDF export outcomes.
	QuoteExportTotal *prometheus.CounterVec
	// QuoteExportDuration records PDF generation latency in milliseconds.
	QuoteExportDuration prometheus.Histogram
	// CatalogMutationsTotal counts catalog write operations by kind.
	CatalogMutationsTotal *prometheus.CounterVec
	// PersistenceFailuresTotal counts key-value writes that failed and were
	// absorbed by the in-memory state.
	PersistenceFailuresTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuotesComputedTotal = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_computed_total",
			Help:      "Number of quote snapshots produced.",
		}))
		QuoteExportTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_export_total",
			Help:      "Count of quote PDF export outcomes.",
		}, []string{"result"}))
		QuoteExportDuration = registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_export_duration_ms",
			Help:      "Latency of quote PDF generation in milliseconds.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		}))
		CatalogMutationsTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_mutations_total",
			Help:      "Count of catalog write operations by kind.",
		}, []string{"op"}))
		PersistenceFailuresTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Key-value store writes that failed and fell back to in-memory state.",
		}, []string{"component"}))
	})
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram) prometheus.Histogram {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing
			}
		}
		panic(err)
	}
	return h
}
