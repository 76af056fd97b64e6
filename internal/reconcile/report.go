package reconcile

import (
	"sort"

	"git.home.luguber.info/inful/gitgud/internal/git"
)

// Kind classifies a repository entry or a grading record.
type Kind string

const (
	KindMatched          Kind = "matched"
	KindUnmatchedStudent Kind = "unmatched_student"
	KindUnmatchedRepo    Kind = "unmatched_repo"
	KindNotDirectory     Kind = "not_a_directory"
	KindSkipped          Kind = "skipped"
)

// Classification records the outcome for one repository or one record.
type Classification struct {
	Kind    Kind
	Repo    string
	Student string
}

// Report is the result of one reconciliation run.
type Report struct {
	RunID string
	Mode  Mode

	// Matched maps student name to repository name (grade sheet mode).
	Matched           map[string]string
	UnmatchedStudents []string
	UnmatchedRepos    []string
	NotDirectories    []string
	// Skipped holds repositories the operator chose not to push to.
	Skipped []string
	// Processed holds repositories an artifact was written to, in order.
	Processed []string

	Results         []git.SyncResult
	Classifications []Classification
}

func newReport(runID string, mode Mode) *Report {
	return &Report{RunID: runID, Mode: mode, Matched: map[string]string{}}
}

// Failures returns the sync results that did not fully succeed.
func (r *Report) Failures() []git.SyncResult {
	var out []git.SyncResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Kinds returns the number of classifications per kind.
func (r *Report) Kinds() map[Kind]int {
	counts := map[Kind]int{}
	for _, c := range r.Classifications {
		counts[c.Kind]++
	}
	return counts
}

func (r *Report) finish() {
	sort.Strings(r.UnmatchedStudents)
	sort.Strings(r.UnmatchedRepos)
	sort.Strings(r.NotDirectories)
	sort.Strings(r.Skipped)
}
