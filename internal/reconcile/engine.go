package reconcile

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/git"
	"git.home.luguber.info/inful/gitgud/internal/grading"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
	"git.home.luguber.info/inful/gitgud/internal/matcher"
	"git.home.luguber.info/inful/gitgud/internal/metrics"
	"git.home.luguber.info/inful/gitgud/internal/util/sets"
	"git.home.luguber.info/inful/gitgud/internal/workspace"
)

// Mode names a reconciliation run.
type Mode string

const (
	ModePassFail   Mode = "pass-fail"
	ModeComment    Mode = "comment"
	ModeGradeSheet Mode = "grade-sheet"
)

// ErrNoDecisions is returned when an interactive mode runs without a DecisionProvider.
var ErrNoDecisions = errors.InternalError("no decision provider configured").Build()

// Workspace is the project directory as seen by the engine.
type Workspace interface {
	Entries() ([]workspace.Entry, error)
	WriteArtifact(repo, filename, content string) (string, error)
}

// Syncer pushes one artifact file in one repository.
type Syncer interface {
	Sync(ctx context.Context, file, repoPath string) git.SyncResult
}

// Options carries the artifact settings from configuration.
type Options struct {
	ResultFile string
	Passed     string
	Failed     string
}

// Engine runs reconciliations over a project directory.
type Engine struct {
	ws        Workspace
	syncer    Syncer
	opts      Options
	decisions DecisionProvider
	recorder  metrics.Recorder
	logger    *slog.Logger
	newRunID  func() string
}

// NewEngine returns an Engine writing opts.ResultFile into repositories of ws.
func NewEngine(ws Workspace, syncer Syncer, opts Options) *Engine {
	return &Engine{
		ws:       ws,
		syncer:   syncer,
		opts:     opts,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		newRunID: uuid.NewString,
	}
}

// WithDecisions sets the provider used by PushOutcomes and PushComments.
func (e *Engine) WithDecisions(d DecisionProvider) *Engine {
	e.decisions = d
	return e
}

// WithRecorder sets the metrics recorder.
func (e *Engine) WithRecorder(r metrics.Recorder) *Engine {
	if r != nil {
		e.recorder = r
	}
	return e
}

// WithLogger sets the logger.
func (e *Engine) WithLogger(l *slog.Logger) *Engine {
	if l != nil {
		e.logger = l
	}
	return e
}

// PushOutcomes asks for a pass/fail verdict per repository and pushes the
// matching marker as the result file.
func (e *Engine) PushOutcomes(ctx context.Context) (*Report, error) {
	return e.interactive(ctx, ModePassFail, func(ctx context.Context, repo string) (string, bool, error) {
		outcome, err := e.decisions.Outcome(ctx, repo)
		if err != nil {
			return "", false, err
		}
		switch outcome {
		case OutcomeSkip:
			return "", false, nil
		case OutcomeFail:
			return e.opts.Failed, true, nil
		default:
			return e.opts.Passed, true, nil
		}
	})
}

// PushComments asks for a comment per repository and pushes it as the result
// file. Repositories with an empty comment are skipped.
func (e *Engine) PushComments(ctx context.Context) (*Report, error) {
	return e.interactive(ctx, ModeComment, func(ctx context.Context, repo string) (string, bool, error) {
		text, err := e.decisions.Comment(ctx, repo)
		if err != nil {
			return "", false, err
		}
		return text, text != "", nil
	})
}

type decideFunc func(ctx context.Context, repo string) (content string, push bool, err error)

func (e *Engine) interactive(ctx context.Context, mode Mode, decide decideFunc) (*Report, error) {
	if e.decisions == nil {
		return nil, ErrNoDecisions
	}
	rep, log, done := e.start(mode)
	defer done()

	entries, err := e.ws.Entries()
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			rep.finish()
			return rep, err
		}
		if !entry.IsDir {
			e.classify(rep, log, Classification{Kind: KindNotDirectory, Repo: entry.Name})
			rep.NotDirectories = append(rep.NotDirectories, entry.Name)
			continue
		}

		content, push, err := decide(ctx, entry.Name)
		if err != nil {
			rep.finish()
			return rep, err
		}
		if !push {
			e.classify(rep, log, Classification{Kind: KindSkipped, Repo: entry.Name})
			rep.Skipped = append(rep.Skipped, entry.Name)
			continue
		}

		e.classify(rep, log, Classification{Kind: KindMatched, Repo: entry.Name})
		rep.Processed = append(rep.Processed, entry.Name)
		rep.Results = append(rep.Results, e.push(ctx, log, entry, content))
	}

	rep.finish()
	return rep, nil
}

// Records is the student lookup PushGradeSheet reads; grading.Sheet implements it.
type Records interface {
	Names() []string
	Get(student string) (grading.Record, error)
}

// PushGradeSheet matches every directory of the project against the
// students of sheet and pushes each matched student's record. A failed
// lookup stops the batch and returns the report built so far.
func (e *Engine) PushGradeSheet(ctx context.Context, sheet Records) (*Report, error) {
	rep, log, done := e.start(ModeGradeSheet)
	defer done()

	entries, err := e.ws.Entries()
	if err != nil {
		return nil, err
	}

	remaining := sets.New(sheet.Names()...)
	unmatched := sets.New[string]()
	for _, entry := range entries {
		if entry.IsDir {
			unmatched.Add(entry.Name)
		}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			rep.UnmatchedRepos = unmatched.Sorted()
			rep.UnmatchedStudents = remaining.Sorted()
			rep.finish()
			return rep, err
		}
		if !entry.IsDir {
			e.classify(rep, log, Classification{Kind: KindNotDirectory, Repo: entry.Name})
			rep.NotDirectories = append(rep.NotDirectories, entry.Name)
			continue
		}

		student, err := matcher.MatchStudent(entry.Name, remaining.Sorted())
		if err != nil {
			e.classify(rep, log, Classification{Kind: KindUnmatchedRepo, Repo: entry.Name})
			continue
		}

		record, err := sheet.Get(student)
		if err != nil {
			rep.UnmatchedRepos = unmatched.Sorted()
			rep.UnmatchedStudents = remaining.Sorted()
			rep.finish()
			return rep, err
		}
		unmatched.Delete(entry.Name)
		remaining.Delete(student)
		rep.Matched[student] = entry.Name
		rep.Processed = append(rep.Processed, entry.Name)
		e.classify(rep, log, Classification{Kind: KindMatched, Repo: entry.Name, Student: student})

		rep.Results = append(rep.Results, e.push(ctx, log.With(logfields.Student(student)), entry, record.Content))
	}

	for _, student := range remaining.Sorted() {
		e.classify(rep, log, Classification{Kind: KindUnmatchedStudent, Student: student})
	}
	rep.UnmatchedRepos = unmatched.Sorted()
	rep.UnmatchedStudents = remaining.Sorted()
	rep.finish()
	return rep, nil
}

// push writes content as the result file of entry and syncs it. A write
// failure becomes a failed stage with the remaining steps skipped.
func (e *Engine) push(ctx context.Context, log *slog.Logger, entry workspace.Entry, content string) git.SyncResult {
	if _, err := e.ws.WriteArtifact(entry.Name, e.opts.ResultFile, content); err != nil {
		log.Error("Failed to write grading artifact", logfields.Repository(entry.Name), logfields.Error(err))
		return writeFailure(entry.Name, err)
	}
	res := e.syncer.Sync(ctx, e.opts.ResultFile, entry.Path)
	res.Repo = entry.Name
	if res.OK() {
		log.Info("Pushed grading artifact", logfields.Repository(entry.Name))
	} else {
		log.Warn("Push incomplete", logfields.Repository(entry.Name), logfields.Error(res.Err()))
	}
	return res
}

func writeFailure(repo string, err error) git.SyncResult {
	skipped := func(step git.Step) git.StepResult {
		return git.StepResult{Step: step, Status: git.StatusSkipped, ExitCode: -1}
	}
	return git.SyncResult{
		Repo:   repo,
		Stage:  git.StepResult{Step: git.StepStage, Status: git.StatusFailed, ExitCode: -1, Err: err},
		Commit: skipped(git.StepCommit),
		Push:   skipped(git.StepPush),
	}
}

func (e *Engine) classify(rep *Report, log *slog.Logger, c Classification) {
	rep.Classifications = append(rep.Classifications, c)
	e.recorder.IncClassification(string(c.Kind))
	log.Debug("Classified", slog.String("kind", string(c.Kind)), logfields.Repository(c.Repo), logfields.Student(c.Student))
}

func (e *Engine) start(mode Mode) (*Report, *slog.Logger, func()) {
	rep := newReport(e.newRunID(), mode)
	log := e.logger.With(logfields.RunID(rep.RunID), logfields.Mode(string(mode)))
	began := time.Now()
	log.Info("Reconciliation started")
	return rep, log, func() {
		d := time.Since(began)
		e.recorder.ObserveRunDuration(string(mode), d)
		log.Info("Reconciliation finished",
			logfields.DurationMS(float64(d.Milliseconds())),
			logfields.Count(len(rep.Processed)),
			slog.Int("failures", len(rep.Failures())))
	}
}

// IsCancelled reports whether err stems from a cancelled run.
func IsCancelled(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}
