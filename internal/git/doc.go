// Package git pushes grading artifacts into student repositories and clones
// them in the first place.
//
// Syncer runs the three git invocations (add, commit, push) for one artifact
// through a Runner so tests can substitute the executable. Cloner uses go-git
// with token authentication. Typed errors let callers classify clone
// failures without parsing strings.
package git
