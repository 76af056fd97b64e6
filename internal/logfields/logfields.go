package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyMode       = "mode"
	KeyRepo       = "repository"
	KeyStudent    = "student"
	KeyOwner      = "owner"
	KeyCollab     = "collaborator"
	KeyProject    = "project"
	KeyOrg        = "organization"
	KeyStep       = "step"
	KeyExitCode   = "exit_code"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyURL        = "url"
	KeyProvider   = "provider"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Mode(m string) slog.Attr          { return slog.String(KeyMode, m) }
func Repository(r string) slog.Attr    { return slog.String(KeyRepo, r) }
func Student(s string) slog.Attr       { return slog.String(KeyStudent, s) }
func Owner(o string) slog.Attr         { return slog.String(KeyOwner, o) }
func Collaborator(c string) slog.Attr  { return slog.String(KeyCollab, c) }
func Project(p string) slog.Attr       { return slog.String(KeyProject, p) }
func Organization(o string) slog.Attr  { return slog.String(KeyOrg, o) }
func Step(s string) slog.Attr          { return slog.String(KeyStep, s) }
func ExitCode(c int) slog.Attr         { return slog.Int(KeyExitCode, c) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Provider(p string) slog.Attr      { return slog.String(KeyProvider, p) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }

// URL logs a URL after removing any embedded credentials.
func URL(u string) slog.Attr { return slog.String(KeyURL, RedactURL(u)) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
