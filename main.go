package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tracker/internal/commands"
	"github.com/colonyops/tracker/internal/core/config"
	"github.com/colonyops/tracker/internal/core/logging"
	"github.com/colonyops/tracker/internal/tracker"
	"github.com/colonyops/tracker/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func newRootCmd(flags *commands.Flags) *cli.Command {
	return &cli.Command{
		Name:      "tracker",
		Usage:     "Track tasks from the command line",
		UsageText: "tracker [global options] command [arguments]",
		Description: `Tracker keeps a list of tasks in a JSON file in the current directory.

Tasks move from todo to in-progress to done and may carry a due date. Run
'tracker list' to see them, overdue ones marked with *.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
	}
}

// newApp builds the root command with its hooks and subcommands. trackerApp
// is filled in by the Before hook once the config is known.
func newApp(flags *commands.Flags, trackerApp *tracker.App) *cli.Command {
	var logCloser func()

	app := newRootCmd(flags)

	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger
		logCloser = closer

		cfg, err := config.Read(flags.ConfigPath)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		// config validate reports field errors itself
		if c.Args().First() != "config" {
			if err := cfg.Validate(); err != nil {
				return ctx, fmt.Errorf("load config: invalid config: %w", err)
			}
		}
		flags.Config = cfg

		// Populate the pre-allocated App struct (commands already hold a pointer to it)
		*trackerApp = *tracker.NewFromConfig(cfg, log.Logger)

		mainLog := logging.Component("main")
		mainLog.Debug().Str("store", cfg.StoreFile).Str("config", flags.ConfigPath).Msg("tracker ready")
		return ctx, nil
	}

	app.After = func(ctx context.Context, c *cli.Command) error {
		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	app = commands.Register(app, flags, trackerApp)

	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q", c.Args().First())
		}
		return cli.ShowAppHelp(c)
	}

	return app
}

func main() {
	app := newApp(&commands.Flags{}, &tracker.App{})

	exitCode := 0
	if runErr := app.Run(context.Background(), os.Args); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n\n", runErr)
		cli.HelpPrinter(os.Stderr, cli.RootCommandHelpTemplate, app)
		exitCode = 1
	}

	os.Exit(exitCode)
}
