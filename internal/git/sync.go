package git

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gogit "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/gitgud/internal/config"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
	"git.home.luguber.info/inful/gitgud/internal/metrics"
)

// Step names one of the three git invocations of a sync.
type Step string

const (
	StepStage  Step = "stage"
	StepCommit Step = "commit"
	StepPush   Step = "push"
)

// StepStatus is the outcome of a single step.
type StepStatus string

const (
	StatusSuccess StepStatus = "success"
	StatusFailed  StepStatus = "failed"
	StatusSkipped StepStatus = "skipped"
)

// StepResult captures one git invocation.
type StepResult struct {
	Step     Step
	Status   StepStatus
	ExitCode int
	Output   string
	Err      error
}

// SyncResult is the outcome of pushing one artifact into one repository.
type SyncResult struct {
	Repo   string
	Stage  StepResult
	Commit StepResult
	Push   StepResult
	// Head is the short commit hash after the run, when readable.
	Head string
}

// Steps returns the step results in execution order.
func (r SyncResult) Steps() []StepResult {
	return []StepResult{r.Stage, r.Commit, r.Push}
}

// OK reports whether every step succeeded.
func (r SyncResult) OK() bool {
	for _, s := range r.Steps() {
		if s.Status != StatusSuccess {
			return false
		}
	}
	return true
}

// Failed returns the steps that did not succeed.
func (r SyncResult) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps() {
		if s.Status != StatusSuccess {
			out = append(out, s)
		}
	}
	return out
}

// Err summarizes the first failed step as an error, or nil.
func (r SyncResult) Err() error {
	for _, s := range r.Steps() {
		if s.Status == StatusSuccess {
			continue
		}
		if s.Err != nil {
			return &StepError{Repo: r.Repo, Step: s.Step, ExitCode: s.ExitCode, Err: s.Err}
		}
		return &StepError{Repo: r.Repo, Step: s.Step, ExitCode: s.ExitCode, Err: fmt.Errorf("%s", s.Status)}
	}
	return nil
}

// Syncer stages, commits and pushes a single file.
type Syncer struct {
	runner   Runner
	template string
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewSyncer returns a Syncer using template for commit messages.
func NewSyncer(runner Runner, template string) *Syncer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Syncer{runner: runner, template: template, recorder: metrics.NoopRecorder{}, logger: slog.Default()}
}

// WithRecorder sets the metrics recorder.
func (s *Syncer) WithRecorder(r metrics.Recorder) *Syncer {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithLogger sets the logger.
func (s *Syncer) WithLogger(l *slog.Logger) *Syncer {
	if l != nil {
		s.logger = l
	}
	return s
}

// Sync runs add, commit and push for file inside repoPath. Every step runs
// regardless of the previous one's outcome; only a cancelled context skips
// the remaining steps.
func (s *Syncer) Sync(ctx context.Context, file, repoPath string) SyncResult {
	res := SyncResult{Repo: repoPath}
	msg := config.FormatCommitMessage(s.template, file)

	res.Stage = s.run(ctx, StepStage, repoPath, "add", file)
	res.Commit = s.run(ctx, StepCommit, repoPath, "commit", "-m", msg)
	res.Push = s.run(ctx, StepPush, repoPath, "push")
	res.Head = readHead(repoPath)

	if res.OK() {
		s.logger.Info("Pushed artifact", logfields.Repository(repoPath), logfields.File(file), slog.String("commit", res.Head))
	}
	return res
}

func (s *Syncer) run(ctx context.Context, step Step, dir string, args ...string) StepResult {
	if ctx.Err() != nil {
		s.recorder.ObserveSyncStep(string(step), metrics.ResultSkipped, 0)
		return StepResult{Step: step, Status: StatusSkipped, ExitCode: -1, Err: ctx.Err()}
	}

	start := time.Now()
	out, code, err := s.runner.Run(ctx, dir, args...)
	elapsed := time.Since(start)

	r := StepResult{Step: step, Status: StatusSuccess, ExitCode: code, Output: out, Err: err}
	label := metrics.ResultSuccess
	if err != nil || code != 0 {
		r.Status = StatusFailed
		label = metrics.ResultFailed
		s.logger.Warn("git step failed",
			logfields.Repository(dir),
			logfields.Step(string(step)),
			logfields.ExitCode(code),
			logfields.Error(err),
			slog.String("output", out))
	} else {
		s.logger.Debug("git step ok", logfields.Repository(dir), logfields.Step(string(step)),
			logfields.DurationMS(float64(elapsed.Milliseconds())))
	}
	s.recorder.ObserveSyncStep(string(step), label, elapsed)
	return r
}

// readHead returns the short HEAD hash of the repository at path, or "".
func readHead(path string) string {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return ""
	}
	ref, err := repo.Head()
	if err != nil {
		return ""
	}
	h := ref.Hash().String()
	if len(h) > 8 {
		h = h[:8]
	}
	return h
}
