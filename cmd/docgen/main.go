// Command docgen generates CLI reference documentation from the tracker
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tracker/internal/commands"
	"github.com/colonyops/tracker/internal/tracker"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "tracker",
		Usage:     "Track tasks from the command line",
		UsageText: "tracker [global options] command [arguments]",
		Description: `Tracker keeps a list of tasks in a JSON file in the current directory.

Tasks move from todo to in-progress to done and may carry a due date. Run
'tracker list' to see them, overdue ones marked with *.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error, fatal, panic)",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "path to log file (defaults to stderr)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Value:   "$XDG_CONFIG_HOME/tracker/config.yaml",
			},
		},
	}

	root = commands.Register(root, flags, &tracker.App{})

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
