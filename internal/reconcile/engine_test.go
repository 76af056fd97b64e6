package reconcile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gitgud/internal/git"
	"git.home.luguber.info/inful/gitgud/internal/grading"
	"git.home.luguber.info/inful/gitgud/internal/workspace"
)

type fakeSyncer struct {
	calls    []string
	failPush map[string]bool
	// onSync runs after each call, e.g. to cancel the context.
	onSync func()
}

func (f *fakeSyncer) Sync(_ context.Context, file, repoPath string) git.SyncResult {
	f.calls = append(f.calls, filepath.Base(repoPath)+"/"+file)
	ok := git.StepResult{Status: git.StatusSuccess}
	res := git.SyncResult{Repo: repoPath, Stage: ok, Commit: ok, Push: ok}
	if f.failPush[filepath.Base(repoPath)] {
		res.Push = git.StepResult{Step: git.StepPush, Status: git.StatusFailed, ExitCode: 1}
	}
	if f.onSync != nil {
		f.onSync()
	}
	return res
}

func project(t *testing.T, dirs []string, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0o750))
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, f), []byte("x"), 0o600))
	}
	return root
}

func opts() Options {
	return Options{ResultFile: "GRADING.md", Passed: "Result: PASS", Failed: "Result: FAIL"}
}

func sheet(t *testing.T, doc string) grading.Sheet {
	t.Helper()
	s, err := grading.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return s
}

func TestPushGradeSheet_ClassifiesEverything(t *testing.T) {
	root := project(t, []string{"2024-alice", "2024-carol"}, "README.txt")
	sync := &fakeSyncer{}
	e := NewEngine(workspace.NewManager(root), sync, opts())

	rep, err := e.PushGradeSheet(context.Background(), sheet(t, "### alice\nGood\n### bob\nOk\n"))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"alice": "2024-alice"}, rep.Matched)
	assert.Equal(t, []string{"bob"}, rep.UnmatchedStudents)
	assert.Equal(t, []string{"2024-carol"}, rep.UnmatchedRepos)
	assert.Equal(t, []string{"README.txt"}, rep.NotDirectories)
	assert.Equal(t, []string{"2024-alice/GRADING.md"}, sync.calls)
	assert.NotEmpty(t, rep.RunID)

	data, err := os.ReadFile(filepath.Join(root, "2024-alice", "GRADING.md"))
	require.NoError(t, err)
	assert.Equal(t, "### alice\nGood\n", string(data))
	assert.NoFileExists(t, filepath.Join(root, "2024-carol", "GRADING.md"))

	kinds := rep.Kinds()
	assert.Equal(t, 1, kinds[KindMatched])
	assert.Equal(t, 1, kinds[KindUnmatchedStudent])
	assert.Equal(t, 1, kinds[KindUnmatchedRepo])
	assert.Equal(t, 1, kinds[KindNotDirectory])
}

func TestPushGradeSheet_SyncsOncePerMatchInNameOrder(t *testing.T) {
	root := project(t, []string{"2024-bob", "2024-alice", "2024-dave"})
	sync := &fakeSyncer{}
	e := NewEngine(workspace.NewManager(root), sync, opts())

	rep, err := e.PushGradeSheet(context.Background(), sheet(t, "### bob\nb\n### alice\na\n### dave\nd\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-alice/GRADING.md", "2024-bob/GRADING.md", "2024-dave/GRADING.md"}, sync.calls)
	assert.Len(t, rep.Matched, 3)
	assert.Empty(t, rep.UnmatchedRepos)
	assert.Empty(t, rep.UnmatchedStudents)
}

func TestPushGradeSheet_LongestSuffixWins(t *testing.T) {
	root := project(t, []string{"2024-annabel"})
	e := NewEngine(workspace.NewManager(root), &fakeSyncer{}, opts())

	rep, err := e.PushGradeSheet(context.Background(), sheet(t, "### bel\nshort\n### annabel\nlong\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"annabel": "2024-annabel"}, rep.Matched)
	assert.Equal(t, []string{"bel"}, rep.UnmatchedStudents)
}

func TestPushGradeSheet_RecordConsumedOnce(t *testing.T) {
	root := project(t, []string{"a-alice", "b-alice"})
	sync := &fakeSyncer{}
	e := NewEngine(workspace.NewManager(root), sync, opts())

	rep, err := e.PushGradeSheet(context.Background(), sheet(t, "### alice\nx\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": "a-alice"}, rep.Matched)
	assert.Equal(t, []string{"b-alice"}, rep.UnmatchedRepos)
	assert.Len(t, sync.calls, 1)
}

func TestPushGradeSheet_PushFailureDoesNotStopBatch(t *testing.T) {
	root := project(t, []string{"2024-alice", "2024-bob"})
	sync := &fakeSyncer{failPush: map[string]bool{"2024-alice": true}}
	e := NewEngine(workspace.NewManager(root), sync, opts())

	rep, err := e.PushGradeSheet(context.Background(), sheet(t, "### alice\na\n### bob\nb\n"))
	require.NoError(t, err)
	require.Len(t, rep.Results, 2)
	require.Len(t, rep.Failures(), 1)
	assert.Equal(t, "2024-alice", rep.Failures()[0].Repo)
	assert.True(t, rep.Results[1].OK())
	assert.Len(t, rep.Matched, 2)
}

func TestPushGradeSheet_WriteFailureRecorded(t *testing.T) {
	root := project(t, []string{"2024-alice", "2024-bob"})
	// A directory named like the artifact makes the write fail.
	require.NoError(t, os.Mkdir(filepath.Join(root, "2024-alice", "GRADING.md"), 0o750))
	sync := &fakeSyncer{}
	e := NewEngine(workspace.NewManager(root), sync, opts())

	rep, err := e.PushGradeSheet(context.Background(), sheet(t, "### alice\na\n### bob\nb\n"))
	require.NoError(t, err)
	require.Len(t, rep.Results, 2)
	assert.Equal(t, git.StatusFailed, rep.Results[0].Stage.Status)
	assert.Equal(t, git.StatusSkipped, rep.Results[0].Push.Status)
	assert.Equal(t, []string{"2024-bob/GRADING.md"}, sync.calls)
}

func TestPushGradeSheet_CancelledBetweenRepositories(t *testing.T) {
	root := project(t, []string{"2024-alice", "2024-bob"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sync := &fakeSyncer{onSync: cancel}
	e := NewEngine(workspace.NewManager(root), sync, opts())

	rep, err := e.PushGradeSheet(ctx, sheet(t, "### alice\na\n### bob\nb\n"))
	require.Error(t, err)
	assert.True(t, IsCancelled(err))
	require.NotNil(t, rep)
	assert.Len(t, sync.calls, 1)
	assert.Equal(t, []string{"2024-bob"}, rep.UnmatchedRepos)
	assert.Equal(t, []string{"bob"}, rep.UnmatchedStudents)
}

// brokenRecords lists students but fails to return the record of missing.
type brokenRecords struct {
	grading.Sheet
	missing string
}

func (b brokenRecords) Get(student string) (grading.Record, error) {
	if student == b.missing {
		return grading.Record{}, grading.ErrRecordNotFound
	}
	return b.Sheet.Get(student)
}

func TestPushGradeSheet_LookupFailureKeepsReport(t *testing.T) {
	root := project(t, []string{"2024-alice", "2024-bob"})
	sync := &fakeSyncer{}
	e := NewEngine(workspace.NewManager(root), sync, opts())

	records := brokenRecords{Sheet: sheet(t, "### alice\na\n### bob\nb\n"), missing: "bob"}
	rep, err := e.PushGradeSheet(context.Background(), records)
	require.ErrorIs(t, err, grading.ErrRecordNotFound)
	require.NotNil(t, rep)
	assert.Len(t, rep.Results, 1)
	assert.Equal(t, map[string]string{"alice": "2024-alice"}, rep.Matched)
	assert.Equal(t, []string{"2024-bob"}, rep.UnmatchedRepos)
	assert.Equal(t, []string{"bob"}, rep.UnmatchedStudents)
}

func TestPushGradeSheet_MissingProjectDirectory(t *testing.T) {
	e := NewEngine(workspace.NewManager(filepath.Join(t.TempDir(), "missing")), &fakeSyncer{}, opts())
	_, err := e.PushGradeSheet(context.Background(), sheet(t, "### alice\n"))
	assert.Error(t, err)
}

func TestPushOutcomes(t *testing.T) {
	root := project(t, []string{"2024-alice", "2024-bob", "2024-carol"}, "notes.txt")
	sync := &fakeSyncer{}
	provider := StaticProvider{Outcomes: map[string]Outcome{"2024-bob": OutcomeFail, "2024-carol": OutcomeSkip}}
	e := NewEngine(workspace.NewManager(root), sync, opts()).WithDecisions(provider)

	rep, err := e.PushOutcomes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-alice", "2024-bob"}, rep.Processed)
	assert.Equal(t, []string{"2024-carol"}, rep.Skipped)
	assert.Equal(t, []string{"notes.txt"}, rep.NotDirectories)
	assert.Equal(t, []string{"2024-alice/GRADING.md", "2024-bob/GRADING.md"}, sync.calls)

	alice, _ := os.ReadFile(filepath.Join(root, "2024-alice", "GRADING.md"))
	bob, _ := os.ReadFile(filepath.Join(root, "2024-bob", "GRADING.md"))
	assert.Equal(t, "Result: PASS", string(alice))
	assert.Equal(t, "Result: FAIL", string(bob))
}

func TestPushOutcomes_InputEndsStopsBatch(t *testing.T) {
	root := project(t, []string{"2024-alice", "2024-bob", "2024-carol"})
	sync := &fakeSyncer{}
	provider := NewPromptProvider(strings.NewReader("fail\n"), io.Discard)
	e := NewEngine(workspace.NewManager(root), sync, opts()).WithDecisions(provider)

	rep, err := e.PushOutcomes(context.Background())
	require.ErrorIs(t, err, ErrInputExhausted)
	require.NotNil(t, rep)
	assert.Equal(t, []string{"2024-alice/GRADING.md"}, sync.calls)
	assert.Equal(t, []string{"2024-alice"}, rep.Processed)

	for _, repo := range []string{"2024-bob", "2024-carol"} {
		_, statErr := os.Stat(filepath.Join(root, repo, "GRADING.md"))
		assert.True(t, os.IsNotExist(statErr), "%s must not be graded", repo)
	}
}

func TestPushComments_PromptedBlocks(t *testing.T) {
	root := project(t, []string{"2024-alice", "2024-bob"})
	sync := &fakeSyncer{}
	in := strings.NewReader("Nice work\nsecond line\n.\n.\n")
	var out strings.Builder
	e := NewEngine(workspace.NewManager(root), sync, opts()).WithDecisions(NewPromptProvider(in, &out))

	rep, err := e.PushComments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-alice"}, rep.Processed)
	assert.Equal(t, []string{"2024-bob"}, rep.Skipped)
	assert.Contains(t, out.String(), "Grading 2024-alice")

	data, _ := os.ReadFile(filepath.Join(root, "2024-alice", "GRADING.md"))
	assert.Equal(t, "Nice work\nsecond line\n", string(data))
}

func TestPushComments_SharedComment(t *testing.T) {
	root := project(t, []string{"2024-alice", "2024-bob"})
	sync := &fakeSyncer{}
	e := NewEngine(workspace.NewManager(root), sync, opts()).WithDecisions(StaticProvider{Shared: "See the course page\n"})

	rep, err := e.PushComments(context.Background())
	require.NoError(t, err)
	assert.Len(t, rep.Processed, 2)
	assert.Len(t, sync.calls, 2)
}

func TestInteractiveModesRequireProvider(t *testing.T) {
	e := NewEngine(workspace.NewManager(t.TempDir()), &fakeSyncer{}, opts())
	_, err := e.PushOutcomes(context.Background())
	assert.ErrorIs(t, err, ErrNoDecisions)
}
