package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "roster:", err)
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "roster",
		Usage: "inspect and edit wrestling team roster files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "weights",
				Usage:   "weight categories resource (JSON or YAML); the built-in table when empty",
				EnvVars: []string{"WEIGHT_CATEGORIES_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			validateCommand(),
			statsCommand(),
			breakdownCommand(),
			membersCommand(),
			normalizeCommand(),
			newTeamCommand(),
			addCoachCommand(),
			addWrestlerCommand(),
			removeCommand(),
			retypeCommand(),
			columnsCommand(),
		},
	}
}
