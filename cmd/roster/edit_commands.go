package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/usecase"
)

const forceFlagName = "force"

func forceFlag() cli.Flag {
	return &cli.BoolFlag{Name: forceFlagName, Usage: "rewrite the roster even if some lines fail to load (they are dropped)"}
}

func baseFlags() []cli.Flag {
	return []cli.Flag{
		forceFlag(),
		&cli.StringFlag{Name: "last", Usage: "last name", Required: true},
		&cli.StringFlag{Name: "first", Usage: "first name", Required: true},
		&cli.StringFlag{Name: "gender", Usage: "Male or Female", Required: true},
		&cli.StringFlag{Name: "school", Usage: "school name", Required: true},
		&cli.IntFlag{Name: "years", Usage: "years of experience"},
	}
}

func baseFromFlags(c *cli.Context) (member.Base, error) {
	gender, err := member.ParseGender(c.String("gender"))
	if err != nil {
		return member.Base{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return member.Base{
		LastName:          c.String("last"),
		FirstName:         c.String("first"),
		Gender:            gender,
		School:            c.String("school"),
		YearsOfExperience: c.Int("years"),
	}, nil
}

func addCoachCommand() *cli.Command {
	return &cli.Command{
		Name:      "add-coach",
		Usage:     "append a coach to a roster file",
		ArgsUsage: "<file>",
		Flags: append(baseFlags(),
			&cli.StringFlag{Name: "type", Usage: "Hands-on or Support", Value: member.CoachHandsOn.String()},
		),
		Action: func(c *cli.Context) error {
			base, err := baseFromFlags(c)
			if err != nil {
				return err
			}
			coachType, err := member.ParseCoachType(c.String("type"))
			if err != nil {
				return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
			}
			return addAndSave(c, member.NewCoach(base, member.Coach{Type: coachType}))
		},
	}
}

func addWrestlerCommand() *cli.Command {
	return &cli.Command{
		Name:      "add-wrestler",
		Usage:     "append a wrestler to a roster file",
		ArgsUsage: "<file>",
		Flags: append(baseFlags(),
			&cli.StringFlag{Name: "birthdate", Usage: "MM/dd/yyyy", Required: true},
			&cli.Float64Flag{Name: "weight", Usage: "weight in kilograms", Required: true},
			&cli.IntFlag{Name: "wins"},
			&cli.IntFlag{Name: "losses"},
			&cli.IntFlag{Name: "points", Usage: "total points"},
			&cli.IntFlag{Name: "pins", Usage: "wins by pin"},
			&cli.StringFlag{Name: "status", Usage: "Active, Injured or Quit", Value: member.StatusActive.String()},
			&cli.BoolFlag{Name: "uniform", Usage: "uniform signed out"},
		),
		Action: func(c *cli.Context) error {
			base, err := baseFromFlags(c)
			if err != nil {
				return err
			}
			birthdate, err := member.ParseDate(c.String("birthdate"))
			if err != nil {
				return fmt.Errorf("%w: birthdate: %v", usecase.ErrInvalidInput, err)
			}
			status, err := member.ParseWrestlerStatus(c.String("status"))
			if err != nil {
				return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
			}
			return addAndSave(c, member.NewWrestler(base, member.Wrestler{
				Birthdate:        birthdate,
				Weight:           c.Float64("weight"),
				Wins:             c.Int("wins"),
				Losses:           c.Int("losses"),
				TotalPoints:      c.Int("points"),
				WinsByPin:        c.Int("pins"),
				Status:           status,
				UniformSignedOut: c.Bool("uniform"),
			}))
		},
	}
}

func addAndSave(c *cli.Context, m *member.Member) error {
	w, err := openWorkspace(c)
	if err != nil {
		return err
	}
	result, err := w.openForEdit(c)
	if err != nil {
		return err
	}
	if _, err := w.svc.AddMember(c.Context, result.Team.Name, m); err != nil {
		return err
	}
	if err := w.svc.SaveTeam(c.Context, result.Team.Name, ""); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "added %s %s\n", m.Kind(), m.FullName())
	return nil
}

func nameFlags() []cli.Flag {
	return []cli.Flag{
		forceFlag(),
		&cli.StringFlag{Name: "last", Usage: "last name", Required: true},
		&cli.StringFlag{Name: "first", Usage: "first name", Required: true},
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "remove a member from a roster file",
		ArgsUsage: "<file>",
		Flags:     nameFlags(),
		Action: func(c *cli.Context) error {
			w, err := openWorkspace(c)
			if err != nil {
				return err
			}
			result, err := w.openForEdit(c)
			if err != nil {
				return err
			}
			target, err := w.findMember(c, result.Team.Name, c.String("last"), c.String("first"))
			if err != nil {
				return err
			}
			if err := w.svc.RemoveMember(c.Context, result.Team.Name, target.ID); err != nil {
				return err
			}
			if err := w.svc.SaveTeam(c.Context, result.Team.Name, ""); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "removed %s %s\n", target.Kind(), target.FullName())
			return nil
		},
	}
}

func retypeCommand() *cli.Command {
	return &cli.Command{
		Name:      "retype",
		Usage:     "move a member to another kind, resetting kind specific fields",
		ArgsUsage: "<file>",
		Flags: append(nameFlags(),
			&cli.StringFlag{Name: "kind", Usage: "Coach or Wrestler", Required: true},
		),
		Action: func(c *cli.Context) error {
			kind, err := parseKindArg(c.String("kind"))
			if err != nil {
				return err
			}
			w, err := openWorkspace(c)
			if err != nil {
				return err
			}
			result, err := w.openForEdit(c)
			if err != nil {
				return err
			}
			target, err := w.findMember(c, result.Team.Name, c.String("last"), c.String("first"))
			if err != nil {
				return err
			}
			replacement, err := w.svc.ChangeMemberKind(c.Context, result.Team.Name, target.ID, kind)
			if err != nil {
				return err
			}
			if err := w.svc.SaveTeam(c.Context, result.Team.Name, ""); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%s is now a %s\n", replacement.FullName(), replacement.Kind())
			return nil
		},
	}
}
