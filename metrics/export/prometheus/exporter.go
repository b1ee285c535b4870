package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mealbook "github.com/feastline/mealbook"
	"github.com/feastline/mealbook/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() mealbook.MetricsSnapshot
	AuditDropped() uint64
}

// Exporter implements [prometheus.Collector] over a client's metrics snapshot.
// All metrics are emitted as const metrics read at scrape time, so the exporter
// itself holds no counter state.
type Exporter struct {
	source metricsSource

	counterDescs  map[mealbook.MetricID]*prometheus.Desc
	histDescs     map[mealbook.MetricID]*prometheus.Desc
	auditDropDesc *prometheus.Desc
}

// NewExporter creates a collector that reads from the given [mealbook.Client].
func NewExporter(client *mealbook.Client) *Exporter {
	return NewExporterFromSource(client)
}

// NewExporterFromSource creates a collector from a custom metrics source.
func NewExporterFromSource(source metricsSource) *Exporter {
	e := &Exporter{
		source:       source,
		counterDescs: make(map[mealbook.MetricID]*prometheus.Desc, len(internaldefs.CounterDefs)),
		histDescs:    make(map[mealbook.MetricID]*prometheus.Desc, len(internaldefs.HistogramDefs)),
		auditDropDesc: prometheus.NewDesc(
			"mealbook_audit_dropped_total",
			"Dropped audit events due to dispatcher backpressure.",
			nil, nil,
		),
	}
	for _, def := range internaldefs.CounterDefs {
		e.counterDescs[def.ID] = prometheus.NewDesc(def.Name, def.Help, nil, nil)
	}
	for _, def := range internaldefs.HistogramDefs {
		e.histDescs[def.ID] = prometheus.NewDesc(def.Name, def.Help, nil, nil)
	}
	return e
}

// Describe implements [prometheus.Collector].
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, def := range internaldefs.CounterDefs {
		ch <- e.counterDescs[def.ID]
	}
	for _, def := range internaldefs.HistogramDefs {
		ch <- e.histDescs[def.ID]
	}
	ch <- e.auditDropDesc
}

// Collect implements [prometheus.Collector].
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	if e == nil || e.source == nil {
		return
	}

	snapshot := e.source.MetricsSnapshot()

	for _, def := range internaldefs.CounterDefs {
		ch <- prometheus.MustNewConstMetric(
			e.counterDescs[def.ID],
			prometheus.CounterValue,
			float64(snapshot.Counters[def.ID]),
		)
	}

	for _, def := range internaldefs.HistogramDefs {
		raw, ok := snapshot.Histograms[def.ID]
		if !ok {
			continue
		}
		cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(raw))

		buckets := make(map[float64]uint64, len(internaldefs.HistogramBounds))
		for i, le := range internaldefs.HistogramBounds {
			buckets[le] = cumulative[i]
		}
		count := cumulative[len(cumulative)-1]

		// Sum is not tracked in core snapshots; expose 0 to keep the series
		// shape valid.
		ch <- prometheus.MustNewConstHistogram(e.histDescs[def.ID], count, 0, buckets)
	}

	ch <- prometheus.MustNewConstMetric(
		e.auditDropDesc,
		prometheus.CounterValue,
		float64(e.source.AuditDropped()),
	)
}

// Handler returns an http.Handler serving this exporter through a private
// registry.
func (e *Exporter) Handler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(e)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
