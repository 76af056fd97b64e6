package commands

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/gitgud/internal/grading"
	"git.home.luguber.info/inful/gitgud/internal/reconcile"
)

// PushGradeSheetCmd implements the 'push-grade-sheet' command.
type PushGradeSheetCmd struct {
	PushTarget
	Sheet string `name:"sheet" short:"s" help:"Path to the markdown grading sheet (prompted when empty)" type:"path"`
}

func (p *PushGradeSheetCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	path := p.Sheet
	if path == "" {
		_, _ = fmt.Fprint(g.prompts(), "Enter path to sheet filename: ")
		line, _ := bufio.NewReader(g.In).ReadString('\n')
		path = strings.TrimSpace(line)
	}

	sheet, err := grading.ParseFile(path)
	if err != nil {
		if stderrors.Is(err, grading.ErrNotMarkdown) {
			_, _ = fmt.Fprintf(g.Out, "%s is not a markdown file: it must end in .md\n", path)
		}
		return err
	}

	return runPush(g, cfg, p.PushTarget, nil, func(e *reconcile.Engine, ctx context.Context) (*reconcile.Report, error) {
		return e.PushGradeSheet(ctx, sheet)
	})
}
