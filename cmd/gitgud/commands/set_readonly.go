package commands

import (
	"bufio"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/gitgud/internal/forge"
	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/util/sets"
)

// ConfirmWord must be typed to confirm set-readonly.
const ConfirmWord = "YES"

// SetReadonlyCmd implements the 'set-readonly' command.
type SetReadonlyCmd struct {
	Target
	Yes bool `name:"yes" help:"Skip the confirmation prompt"`
}

func (s *SetReadonlyCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if !s.Yes && !confirm(g) {
		_, _ = fmt.Fprintln(g.Out, "Aborted")
		return nil
	}

	client, _, err := newForgeClient(g.Ctx, cfg)
	if err != nil {
		return err
	}
	repos, err := matchingRepositories(g.Ctx, client, s.Target)
	if err != nil {
		return err
	}

	owners := sets.New(cfg.Owners...)
	failed := 0
	for _, r := range repos {
		_, _ = fmt.Fprintf(g.Out, "Changing permissions for %s\n", r.Name)
		changes, err := forge.SetReadOnly(g.Ctx, client, r, owners)
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(g.Out, "    failed: %v\n", err)
			continue
		}
		for _, c := range changes {
			switch c.Result {
			case forge.AccessOwner:
				_, _ = fmt.Fprintf(g.Out, "    Owner: %s\n", c.Collaborator)
			case forge.AccessReadOnly:
				_, _ = fmt.Fprintf(g.Out, "    %s can only read\n", c.Collaborator)
			case forge.AccessStillWritable:
				_, _ = fmt.Fprintf(g.Out, "    %s can still write because read-only is only possible in organizations\n", c.Collaborator)
			default:
				failed++
				_, _ = fmt.Fprintf(g.Out, "    %s: failed: %v\n", c.Collaborator, c.Err)
			}
		}
	}
	if failed > 0 {
		return errors.ForgeError(fmt.Sprintf("%d permission changes failed", failed)).Build()
	}
	return nil
}

func confirm(g *Global) bool {
	_, _ = fmt.Fprintln(g.Out, "Are you sure you want to set all non-owners of the matching repos to read-only?")
	_, _ = fmt.Fprintf(g.Out, "Type '%s' to confirm\n", ConfirmWord)
	line, _ := bufio.NewReader(g.In).ReadString('\n')
	return strings.TrimSpace(line) == ConfirmWord
}
