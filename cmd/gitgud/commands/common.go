package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"git.home.luguber.info/inful/gitgud/internal/config"
	"git.home.luguber.info/inful/gitgud/internal/credentials"
	"git.home.luguber.info/inful/gitgud/internal/forge"
	"git.home.luguber.info/inful/gitgud/internal/git"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
	"git.home.luguber.info/inful/gitgud/internal/metrics"
)

// LogLevelEnv overrides the log level when --verbose is not given.
const LogLevelEnv = "GITGUD_LOG_LEVEL"

// Global carries process-wide dependencies into subcommands.
type Global struct {
	Ctx      context.Context
	Logger   *slog.Logger
	In       io.Reader
	Out      io.Writer
	Recorder metrics.Recorder

	// Runner executes git for push commands; nil means the git executable.
	Runner git.Runner
	// Interactive reports whether In is a terminal; prompts are only shown then.
	Interactive bool
}

// NewGlobal returns a Global wired to the process stdio.
func NewGlobal(ctx context.Context) *Global {
	return &Global{
		Ctx:         ctx,
		Logger:      slog.Default(),
		In:          os.Stdin,
		Out:         os.Stdout,
		Recorder:    metrics.NoopRecorder{},
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"gitgud.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after the run"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Ls             LsCmd             `cmd:"" help:"List hosted repositories matching a project"`
	Clone          CloneCmd          `cmd:"" help:"Clone matching repositories into ./<project>"`
	SetReadonly    SetReadonlyCmd    `cmd:"" name:"set-readonly" help:"Downgrade non-owner collaborators of matching repositories to read access"`
	PushPassFail   PushPassFailCmd   `cmd:"" name:"push-pass-fail" help:"Ask pass or fail per repository and push the result file"`
	PushComment    PushCommentCmd    `cmd:"" name:"push-comment" help:"Ask for a comment per repository and push it as the result file"`
	PushGradeSheet PushGradeSheetCmd `cmd:"" name:"push-grade-sheet" help:"Match a markdown grading sheet to repositories and push each student's section"`
	Init           InitCmd           `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel prefers --verbose, then GITGUD_LOG_LEVEL, then info.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Target selects hosted repositories by project substring and optional owner.
type Target struct {
	Organization string `short:"o" name:"organization" help:"Only repositories owned by this organization"`
	Project      string `arg:"" help:"Substring of the repository names (also the local project directory)"`
}

func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded configuration", logfields.File(root.Config))
	return cfg, nil
}

func resolveToken(ctx context.Context, cfg *config.Config) (string, error) {
	creds, err := credentials.DefaultChain(cfg.Credentials).Resolve(ctx)
	if err != nil {
		return "", err
	}
	return creds.Token, nil
}

func newForgeClient(ctx context.Context, cfg *config.Config) (forge.Client, string, error) {
	token, err := resolveToken(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	client, err := forge.NewGitHubClient(cfg.Forge.APIURL, token)
	if err != nil {
		return nil, "", err
	}
	return client, token, nil
}

// matchingRepositories lists the hosted repositories selected by t.
func matchingRepositories(ctx context.Context, client forge.Client, t Target) ([]forge.Repository, error) {
	all, err := client.ListUserRepositories(ctx)
	if err != nil {
		return nil, err
	}
	matches := forge.FilterMatching(all, t.Project, t.Organization)
	slog.Debug("Matched hosted repositories",
		logfields.Project(t.Project), logfields.Organization(t.Organization),
		logfields.Count(len(matches)))
	return matches, nil
}

func (g *Global) prompts() io.Writer {
	if g.Interactive {
		return g.Out
	}
	return io.Discard
}
