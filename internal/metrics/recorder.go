// Package metrics provides observability hooks for conversion runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics stay optional: one-shot CLI runs record nothing,
// the watch command injects a PrometheusRecorder.
package metrics

import "time"

// DocumentResult enumerates per-document outcome categories for counters.
type DocumentResult string

const (
	ResultConverted DocumentResult = "converted"
	ResultUnchanged DocumentResult = "unchanged"
	ResultFailed    DocumentResult = "failed"
)

// Recorder defines observability hooks for run and per-document metrics.
// Implementations must be safe for concurrent use; batch workers share one.
type Recorder interface {
	ObserveDocumentDuration(d time.Duration)
	IncDocumentResult(result DocumentResult)
	AddWarnings(n int)
	ObserveRunDuration(d time.Duration, success bool)
	ObserveFetchDuration(repo string, d time.Duration, success bool)
	SetWatchedFiles(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDocumentDuration(time.Duration)            {}
func (NoopRecorder) IncDocumentResult(DocumentResult)                 {}
func (NoopRecorder) AddWarnings(int)                                  {}
func (NoopRecorder) ObserveRunDuration(time.Duration, bool)           {}
func (NoopRecorder) ObserveFetchDuration(string, time.Duration, bool) {}
func (NoopRecorder) SetWatchedFiles(int)                              {}
