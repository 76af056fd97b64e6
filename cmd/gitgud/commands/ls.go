package commands

import (
	"fmt"
)

// LsCmd implements the 'ls' command.
type LsCmd struct {
	Target
}

func (l *LsCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	client, _, err := newForgeClient(g.Ctx, cfg)
	if err != nil {
		return err
	}
	repos, err := matchingRepositories(g.Ctx, client, l.Target)
	if err != nil {
		return err
	}
	for _, r := range repos {
		_, _ = fmt.Fprintln(g.Out, r.Name)
	}
	return nil
}
