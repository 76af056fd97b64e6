// Package matcher decides which hosted repositories belong to a project and
// which student a local repository directory belongs to. All comparisons are
// case-sensitive and unnormalized.
package matcher

import (
	"strings"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
)

// ErrNoMatch signals that no student name is a suffix of the repository name.
var ErrNoMatch = errors.NewError(errors.CategoryNotFound, "no student matches repository").
	WithSeverity(errors.SeverityInfo).Build()

// IsMatching reports whether a repository belongs to project. With an
// organization, the owner must also equal it exactly.
func IsMatching(repoName, repoOwner, project, organization string) bool {
	if !strings.Contains(repoName, project) {
		return false
	}
	return organization == "" || repoOwner == organization
}

// MatchStudent returns the student whose name is the longest suffix of
// repoName. Equal-length suffixes of one string are identical, so the
// choice does not depend on the order of students.
func MatchStudent(repoName string, students []string) (string, error) {
	best := ""
	for _, s := range students {
		if s == "" || !strings.HasSuffix(repoName, s) {
			continue
		}
		if len(s) > len(best) {
			best = s
		}
	}
	if best == "" {
		return "", ErrNoMatch.WithContext("repository", repoName)
	}
	return best, nil
}
