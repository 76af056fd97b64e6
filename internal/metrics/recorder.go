package metrics

import "time"

// ResultLabel enumerates step result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultSkipped ResultLabel = "skipped"
)

// Recorder defines observability hooks for a reconciliation run.
type Recorder interface {
	// ObserveSyncStep records one stage/commit/push invocation.
	ObserveSyncStep(step string, result ResultLabel, d time.Duration)
	// IncClassification counts one classified repository or record.
	IncClassification(kind string)
	// ObserveRunDuration records the wall time of a whole run.
	ObserveRunDuration(mode string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveSyncStep(string, ResultLabel, time.Duration) {}
func (NoopRecorder) IncClassification(string)                           {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration)           {}
