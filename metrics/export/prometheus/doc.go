// Package prometheus provides a Prometheus collector for mealbook metrics.
//
// [NewExporter] accepts a [mealbook.Client] and implements
// [prometheus.Collector] over its metrics snapshot. Counter names are prefixed
// mealbook_*_total; the single histogram is mealbook_submit_latency_seconds.
//
// # What this package must NOT do
//
//   - Register in the global default registry on import; callers register the
//     collector or mount [Exporter.Handler].
//   - Mutate client state.
package prometheus
