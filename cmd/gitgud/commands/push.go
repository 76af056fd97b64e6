package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/gitgud/internal/config"
	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/git"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
	"git.home.luguber.info/inful/gitgud/internal/reconcile"
	"git.home.luguber.info/inful/gitgud/internal/report"
	"git.home.luguber.info/inful/gitgud/internal/workspace"
)

// PushTarget selects the local project directory for push commands.
type PushTarget struct {
	Target
	Dir string `name:"dir" help:"Parent directory of the project directory" default:"."`
}

// runFunc matches the method expressions of reconcile.Engine.
type runFunc func(e *reconcile.Engine, ctx context.Context) (*reconcile.Report, error)

// runPush builds an engine over ./<project>, runs it and prints the summary.
// A run with sync failures returns a git error after the full batch.
func runPush(g *Global, cfg *config.Config, t PushTarget, decisions reconcile.DecisionProvider, run runFunc) error {
	if t.Organization != "" {
		slog.Info("Organization does not affect pushing", logfields.Organization(t.Organization))
		_, _ = fmt.Fprintln(g.Out, "Organization does not affect pushing")
	}

	ws := workspace.NewManager(workspace.NewManager(t.Dir).RepoPath(t.Project))
	syncer := git.NewSyncer(g.Runner, cfg.CommitMsg).WithRecorder(g.Recorder).WithLogger(g.Logger)
	engine := reconcile.NewEngine(ws, syncer, reconcile.Options{
		ResultFile: cfg.GradingFile,
		Passed:     cfg.Passed,
		Failed:     cfg.Failed,
	}).WithDecisions(decisions).WithRecorder(g.Recorder).WithLogger(g.Logger)

	rep, err := run(engine, g.Ctx)
	if rep != nil {
		_, _ = fmt.Fprintln(g.Out)
		if werr := report.WriteSummary(g.Out, rep); werr != nil {
			return werr
		}
	}
	if err != nil {
		return err
	}
	if n := len(rep.Failures()); n > 0 {
		return errors.GitError(fmt.Sprintf("%d of %d repositories failed to sync", n, len(rep.Results))).
			WithContext(logfields.KeyRunID, rep.RunID).Build()
	}
	return nil
}

// PushPassFailCmd implements the 'push-pass-fail' command.
type PushPassFailCmd struct {
	PushTarget
}

func (p *PushPassFailCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	decisions := reconcile.NewPromptProvider(g.In, g.prompts())
	return runPush(g, cfg, p.PushTarget, decisions, (*reconcile.Engine).PushOutcomes)
}

// PushCommentCmd implements the 'push-comment' command.
type PushCommentCmd struct {
	PushTarget
	Shared bool `name:"shared" help:"Read one comment and push it to every repository"`
}

func (p *PushCommentCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	prompt := reconcile.NewPromptProvider(g.In, g.prompts())
	var decisions reconcile.DecisionProvider = prompt
	if p.Shared {
		text, err := prompt.Comment(g.Ctx, "all repositories")
		if err != nil {
			return err
		}
		if text == "" {
			_, _ = fmt.Fprintln(g.Out, "Empty comment, nothing to push")
			return nil
		}
		decisions = reconcile.StaticProvider{Shared: text}
	}
	return runPush(g, cfg, p.PushTarget, decisions, (*reconcile.Engine).PushComments)
}
