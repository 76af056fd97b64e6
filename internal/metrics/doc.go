// Package metrics records reconciliation and sync outcomes.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so nothing needs nil checks:
//
//	syncer := git.NewSyncer(runner, template).WithRecorder(metrics.NoopRecorder{})
//
// PrometheusRecorder registers its collectors on a caller-supplied registry;
// the CLI writes that registry to a node-exporter textfile with
// WriteTextfile when --metrics-file is set.
package metrics
