package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
)

const exitRosterErrors = 3

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "load a roster and report lines that failed to decode",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			w, err := openWorkspace(c)
			if err != nil {
				return err
			}
			result, err := w.open(c)
			if err != nil {
				return err
			}

			printReport(c.App.Writer, result)
			if result.Report.Errors > 0 {
				return cli.Exit(fmt.Sprintf("%d line(s) failed to decode", result.Report.Errors), exitRosterErrors)
			}
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "print team statistics",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			w, err := openWorkspace(c)
			if err != nil {
				return err
			}
			result, err := w.open(c)
			if err != nil {
				return err
			}
			stats, err := w.svc.Statistics(c.Context, result.Team.Name)
			if err != nil {
				return err
			}
			return printStatistics(c.App.Writer, stats)
		},
	}
}

func breakdownCommand() *cli.Command {
	return &cli.Command{
		Name:      "breakdown",
		Usage:     "count wrestlers per weight category",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			w, err := openWorkspace(c)
			if err != nil {
				return err
			}
			result, err := w.open(c)
			if err != nil {
				return err
			}
			entries, err := w.svc.WeightBreakdown(c.Context, result.Team.Name)
			if err != nil {
				return err
			}
			return printBreakdown(c.App.Writer, entries)
		},
	}
}

func membersCommand() *cli.Command {
	return &cli.Command{
		Name:      "members",
		Usage:     "list roster members",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Usage: "Coach or Wrestler; every kind when empty"},
		},
		Action: func(c *cli.Context) error {
			var kind member.Kind
			if raw := c.String("kind"); raw != "" {
				parsed, err := parseKindArg(raw)
				if err != nil {
					return err
				}
				kind = parsed
			}

			w, err := openWorkspace(c)
			if err != nil {
				return err
			}
			result, err := w.open(c)
			if err != nil {
				return err
			}
			members, err := w.svc.ListMembers(c.Context, result.Team.Name, kind)
			if err != nil {
				return err
			}
			return printMembers(c.App.Writer, members)
		},
	}
}

func normalizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "rewrite a roster in canonical form, dropping lines that fail to decode",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write here instead of over the input"},
		},
		Action: func(c *cli.Context) error {
			w, err := openWorkspace(c)
			if err != nil {
				return err
			}
			result, err := w.open(c)
			if err != nil {
				return err
			}
			if err := w.svc.SaveTeam(c.Context, result.Team.Name, c.String("output")); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "wrote %d member(s), dropped %d line(s)\n", result.Report.Loaded, result.Report.Errors)
			return nil
		},
	}
}

func newTeamCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "create an empty roster file",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "roster file to create", Required: true},
		},
		Action: func(c *cli.Context) error {
			name := strings.TrimSpace(c.Args().First())
			if name == "" {
				return fmt.Errorf("team name argument is required")
			}

			w, err := openWorkspace(c)
			if err != nil {
				return err
			}
			if _, err := w.svc.CreateTeam(c.Context, name); err != nil {
				return err
			}
			return w.svc.SaveTeam(c.Context, name, c.String("output"))
		},
	}
}

func columnsCommand() *cli.Command {
	return &cli.Command{
		Name:      "columns",
		Usage:     "print the serialized column order for a member kind",
		ArgsUsage: "<Coach|Wrestler>",
		Action: func(c *cli.Context) error {
			kind, err := parseKindArg(c.Args().First())
			if err != nil {
				return err
			}
			w, err := openWorkspace(c)
			if err != nil {
				return err
			}
			attrs, err := w.svc.Attributes(kind)
			if err != nil {
				return err
			}
			return printAttributes(c.App.Writer, attrs)
		},
	}
}
