package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	documentDuration prom.Histogram
	documentResults  *prom.CounterVec
	warnings         prom.Counter
	runDuration      *prom.HistogramVec
	fetchDuration    *prom.HistogramVec
	watchedFiles     prom.Gauge
}

// NewPrometheusRecorder constructs and registers the converter's metrics on
// reg. A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		documentDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docmigrate",
			Name:      "document_duration_seconds",
			Help:      "Duration of individual document conversions",
			Buckets:   prom.DefBuckets,
		}),
		documentResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docmigrate",
			Name:      "document_results_total",
			Help:      "Per-document conversion outcomes",
		}, []string{"result"}),
		warnings: prom.NewCounter(prom.CounterOpts{
			Namespace: "docmigrate",
			Name:      "conversion_warnings_total",
			Help:      "Collected conversion warnings across all documents",
		}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docmigrate",
			Name:      "run_duration_seconds",
			Help:      "Total batch run duration",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		fetchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docmigrate",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of source repository fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"repo", "result"}),
		watchedFiles: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docmigrate",
			Name:      "watched_files",
			Help:      "Markdown files under watch in the source tree",
		}),
	}
	reg.MustRegister(pr.documentDuration, pr.documentResults, pr.warnings, pr.runDuration, pr.fetchDuration, pr.watchedFiles)
	return pr
}

func (p *PrometheusRecorder) ObserveDocumentDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.documentDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(result DocumentResult) {
	if p == nil {
		return
	}
	p.documentResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddWarnings(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.warnings.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration, success bool) {
	if p == nil {
		return
	}
	p.runDuration.WithLabelValues(resultLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveFetchDuration(repo string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	p.fetchDuration.WithLabelValues(repo, resultLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetWatchedFiles(n int) {
	if p == nil {
		return
	}
	p.watchedFiles.Set(float64(n))
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}

// HTTPHandler returns an http.Handler serving the registry's metrics.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
