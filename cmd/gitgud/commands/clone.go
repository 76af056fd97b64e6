package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/git"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
	"git.home.luguber.info/inful/gitgud/internal/workspace"
)

// CloneCmd implements the 'clone' command.
type CloneCmd struct {
	Target
	Dir        string `name:"dir" help:"Parent directory of the project directory" default:"."`
	EmbedToken bool   `name:"embed-token" help:"Store the token in each clone's origin URL so push commands can authenticate" default:"true" negatable:""`
}

func (c *CloneCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	client, token, err := newForgeClient(g.Ctx, cfg)
	if err != nil {
		return err
	}
	repos, err := matchingRepositories(g.Ctx, client, c.Target)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		_, _ = fmt.Fprintln(g.Out, "No matching repositories")
		return nil
	}

	ws := workspace.NewManager(workspace.NewManager(c.Dir).RepoPath(c.Project))
	if err := ws.Create(); err != nil {
		return err
	}

	cloner := git.NewCloner(token).WithEmbeddedToken(c.EmbedToken).WithLogger(g.Logger)
	failed := 0
	for _, r := range repos {
		if err := g.Ctx.Err(); err != nil {
			return err
		}
		cloneURL := r.CloneURL
		if cloneURL == "" {
			cloneURL = strings.TrimSuffix(cfg.Forge.BaseURL, "/") + "/" + r.FullName + ".git"
		}
		if _, err := cloner.Clone(g.Ctx, cloneURL, ws.Path(), r.Name); err != nil {
			failed++
			slog.Warn("Clone failed", logfields.Repository(r.Name), logfields.Error(err))
			_, _ = fmt.Fprintf(g.Out, "%s: clone failed: %v\n", r.Name, err)
			continue
		}
		_, _ = fmt.Fprintf(g.Out, "%s: cloned\n", r.Name)
	}
	if failed > 0 {
		return errors.GitError(fmt.Sprintf("%d of %d repositories failed to clone", failed, len(repos))).Build()
	}
	return nil
}
