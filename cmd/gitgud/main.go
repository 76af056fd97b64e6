package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gitgud/cmd/gitgud/commands"
	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
	"git.home.luguber.info/inful/gitgud/internal/metrics"
	"git.home.luguber.info/inful/gitgud/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var cli commands.CLI
	parser, err := kong.New(&cli,
		kong.Name("gitgud"),
		kong.Description("Grade student git repositories: list, clone, lock and push grading results."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	global := commands.NewGlobal(ctx)
	global.Logger = slog.Default()

	var prom *metrics.PrometheusRecorder
	if cli.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		global.Recorder = prom
	}

	runErr := kctx.Run(global, &cli)

	if prom != nil {
		if err := prom.WriteTextfile(cli.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics file", logfields.File(cli.MetricsFile), logfields.Error(err))
		}
	}

	if runErr != nil {
		return errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(runErr)
	}
	return 0
}
