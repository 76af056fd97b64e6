// Package errors provides the classified error primitives used across gitgud.
//
// A ClassifiedError carries a category (config, credentials, git, forge,
// grading, ...), a severity and a retry hint. Package-level sentinels are
// built once with the fluent builder and compared with errors.Is; call sites
// attach detail with WithContext or Wrap without breaking that comparison.
//
//	err := errors.GradingError("grading document has no headers").
//		WithContext("path", path).
//		Build()
//
// CLIErrorAdapter turns classified errors into exit codes and messages.
package errors
