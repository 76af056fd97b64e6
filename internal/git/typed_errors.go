package git

import (
	"fmt"
	"strings"
)

// Typed git errors enabling structured classification without string parsing upstream.
type AuthError struct {
	Op, URL string
	Err     error
}

func (e *AuthError) Error() string { return fmt.Sprintf("%s auth error for %s: %v", e.Op, e.URL, e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Op, URL string
	Err     error
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found %s: %v", e.Op, e.URL, e.Err) }
func (e *NotFoundError) Unwrap() error { return e.Err }

type AlreadyExistsError struct {
	Path string
	Err  error
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("clone target %s already exists: %v", e.Path, e.Err)
}
func (e *AlreadyExistsError) Unwrap() error { return e.Err }

// StepError reports a failed sync step.
type StepError struct {
	Repo     string
	Step     Step
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("git %s failed in %s (exit %d): %v", e.Step, e.Repo, e.ExitCode, e.Err)
}
func (e *StepError) Unwrap() error { return e.Err }

// classifyCloneError wraps clone failures into typed variants when possible.
func classifyCloneError(url, path string, err error) error {
	if err == nil {
		return nil
	}
	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "already exists"):
		return &AlreadyExistsError{Path: path, Err: err}
	case strings.Contains(l, "auth"):
		return &AuthError{Op: "clone", URL: url, Err: err}
	case strings.Contains(l, "not found") || strings.Contains(l, "repository does not exist"):
		return &NotFoundError{Op: "clone", URL: url, Err: err}
	default:
		return err
	}
}
