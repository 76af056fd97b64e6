package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gitgud/internal/metrics"
)

type call struct {
	dir  string
	args []string
}

type fakeRunner struct {
	calls []call
	// fail maps a subcommand to the exit code it returns.
	fail   map[string]int
	cancel context.CancelFunc
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) (string, int, error) {
	f.calls = append(f.calls, call{dir: dir, args: args})
	if code, ok := f.fail[args[0]]; ok {
		return "boom: " + args[0], code, errors.New("exit status")
	}
	if f.cancel != nil && args[0] == "add" {
		f.cancel()
	}
	return "", 0, nil
}

type countingRecorder struct {
	metrics.NoopRecorder
	steps map[string]metrics.ResultLabel
}

func (c *countingRecorder) ObserveSyncStep(step string, r metrics.ResultLabel, _ time.Duration) {
	c.steps[step] = r
}

func TestSync_RunsStepsInOrder(t *testing.T) {
	r := &fakeRunner{}
	s := NewSyncer(r, "Graded project, see the {}-file in the root directory")

	res := s.Sync(context.Background(), "GRADING.md", "/work/2024-alice")

	require.Len(t, r.calls, 3)
	assert.Equal(t, []string{"add", "GRADING.md"}, r.calls[0].args)
	assert.Equal(t, []string{"commit", "-m", "Graded project, see the GRADING.md-file in the root directory"}, r.calls[1].args)
	assert.Equal(t, []string{"push"}, r.calls[2].args)
	for _, c := range r.calls {
		assert.Equal(t, "/work/2024-alice", c.dir)
	}
	assert.True(t, res.OK())
	assert.NoError(t, res.Err())
	assert.Equal(t, "/work/2024-alice", res.Repo)
}

func TestSync_PercentPlaceholder(t *testing.T) {
	r := &fakeRunner{}
	NewSyncer(r, "Graded: %s").Sync(context.Background(), "feedback.txt", "/repo")
	assert.Equal(t, []string{"commit", "-m", "Graded: feedback.txt"}, r.calls[1].args)
}

func TestSync_FailedStepDoesNotStopLaterSteps(t *testing.T) {
	r := &fakeRunner{fail: map[string]int{"commit": 1}}
	rec := &countingRecorder{steps: map[string]metrics.ResultLabel{}}
	s := NewSyncer(r, "{}").WithRecorder(rec)

	res := s.Sync(context.Background(), "GRADING.md", "/repo")

	require.Len(t, r.calls, 3)
	assert.Equal(t, StatusSuccess, res.Stage.Status)
	assert.Equal(t, StatusFailed, res.Commit.Status)
	assert.Equal(t, 1, res.Commit.ExitCode)
	assert.Contains(t, res.Commit.Output, "boom: commit")
	assert.Equal(t, StatusSuccess, res.Push.Status)
	assert.False(t, res.OK())
	require.Len(t, res.Failed(), 1)

	var stepErr *StepError
	require.ErrorAs(t, res.Err(), &stepErr)
	assert.Equal(t, StepCommit, stepErr.Step)

	assert.Equal(t, metrics.ResultFailed, rec.steps["commit"])
	assert.Equal(t, metrics.ResultSuccess, rec.steps["push"])
}

func TestSync_PushFailure(t *testing.T) {
	r := &fakeRunner{fail: map[string]int{"push": 128}}
	res := NewSyncer(r, "{}").Sync(context.Background(), "GRADING.md", "/repo")
	assert.Equal(t, StatusFailed, res.Push.Status)
	assert.Equal(t, 128, res.Push.ExitCode)
}

func TestSync_CancelledContextSkipsRemainingSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := &fakeRunner{cancel: cancel}

	res := NewSyncer(r, "{}").Sync(ctx, "GRADING.md", "/repo")

	require.Len(t, r.calls, 1)
	assert.Equal(t, StatusSuccess, res.Stage.Status)
	assert.Equal(t, StatusSkipped, res.Commit.Status)
	assert.Equal(t, StatusSkipped, res.Push.Status)
	assert.ErrorIs(t, res.Err(), context.Canceled)
}

func TestSync_ExecRunnerAgainstRealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "grader")
	t.Setenv("GIT_AUTHOR_EMAIL", "grader@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "grader")
	t.Setenv("GIT_COMMITTER_EMAIL", "grader@example.com")

	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "GRADING.md"), []byte("Result: PASS"), 0o600))

	res := NewSyncer(ExecRunner{}, "Graded, see {}").Sync(context.Background(), "GRADING.md", dir)

	assert.Equal(t, StatusSuccess, res.Stage.Status)
	assert.Equal(t, StatusSuccess, res.Commit.Status, res.Commit.Output)
	// No remote configured.
	assert.Equal(t, StatusFailed, res.Push.Status)
	assert.NotZero(t, res.Push.ExitCode)
	assert.Len(t, res.Head, 8)

	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Graded, see GRADING.md", strings.TrimSpace(commit.Message))
}
