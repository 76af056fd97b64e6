package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry        *prom.Registry
	stepDuration    *prom.HistogramVec
	stepResults     *prom.CounterVec
	classifications *prom.CounterVec
	runDuration     *prom.HistogramVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stepDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "gitgud",
			Name:      "sync_step_duration_seconds",
			Help:      "Duration of git stage/commit/push invocations",
			Buckets:   prom.DefBuckets,
		}, []string{"step"}),
		stepResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gitgud",
			Name:      "sync_step_results_total",
			Help:      "git step results by outcome",
		}, []string{"step", "result"}),
		classifications: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gitgud",
			Name:      "classifications_total",
			Help:      "Repositories and grading records by classification",
		}, []string{"kind"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "gitgud",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a reconciliation run",
			Buckets:   prom.ExponentialBuckets(0.5, 2, 10),
		}, []string{"mode"}),
	}
	reg.MustRegister(pr.stepDuration, pr.stepResults, pr.classifications, pr.runDuration)
	return pr
}

// Registry returns the registry the collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveSyncStep(step string, result ResultLabel, d time.Duration) {
	if p == nil {
		return
	}
	p.stepDuration.WithLabelValues(step).Observe(d.Seconds())
	p.stepResults.WithLabelValues(step, string(result)).Inc()
}

func (p *PrometheusRecorder) IncClassification(kind string) {
	if p == nil {
		return
	}
	p.classifications.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(mode string, d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// WriteTextfile writes the recorder's registry in the Prometheus text format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
