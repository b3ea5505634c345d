package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveDocumentDuration(20 * time.Millisecond)
	pr.IncDocumentResult(ResultConverted)
	pr.IncDocumentResult(ResultFailed)
	pr.AddWarnings(3)
	pr.ObserveRunDuration(500*time.Millisecond, true)
	pr.ObserveFetchDuration("docs", time.Second, false)
	pr.SetWatchedFiles(42)
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNoopRecorder_ImplementsRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncDocumentResult(ResultUnchanged)
	r.AddWarnings(1)
}
