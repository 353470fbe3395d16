package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/rosterfile"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/weightconfig"
	idgen "github.com/riskibarqy/wrestling-roster/internal/platform/id"
	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
	"github.com/riskibarqy/wrestling-roster/internal/usecase"
)

// workspace is the roster service for one command invocation.
type workspace struct {
	svc    *usecase.RosterService
	logger *logging.Logger
}

func openWorkspace(c *cli.Context) (*workspace, error) {
	logger := logging.NewConsole(c.App.ErrWriter, logging.ParseLevel(c.String("log-level")))

	table, err := weightconfig.NewProvider(c.String("weights")).Table(c.Context)
	if err != nil {
		return nil, fmt.Errorf("load weight categories: %w", err)
	}

	ids := idgen.NewUUIDGenerator()
	codec := rosterfile.NewCodec(table, ids, logger)
	svc := usecase.NewRosterService(codec, memory.NewTeamRepository(), table, ids, logger)

	return &workspace{svc: svc, logger: logger}, nil
}

// open loads the roster named by the first argument and returns its team name.
func (w *workspace) open(c *cli.Context) (usecase.LoadResult, error) {
	path := strings.TrimSpace(c.Args().First())
	if path == "" {
		return usecase.LoadResult{}, fmt.Errorf("roster file argument is required")
	}
	return w.svc.OpenFile(c.Context, path)
}

// openForEdit loads a roster that is about to be rewritten in place. Lines
// that fail to decode would be lost on save, so a roster with load errors is
// refused unless --force is set.
func (w *workspace) openForEdit(c *cli.Context) (usecase.LoadResult, error) {
	result, err := w.open(c)
	if err != nil {
		return result, err
	}
	if result.Report.Errors > 0 && !c.Bool(forceFlagName) {
		printReport(c.App.ErrWriter, result)
		return result, cli.Exit(fmt.Sprintf(
			"%s has %d line(s) that failed to load and would be dropped; fix them, run normalize, or pass --%s",
			result.Path, result.Report.Errors, forceFlagName,
		), exitRosterErrors)
	}
	return result, nil
}

// findMember resolves a member by exact last and first name.
func (w *workspace) findMember(c *cli.Context, teamName, last, first string) (*member.Member, error) {
	members, err := w.svc.ListMembers(c.Context, teamName, "")
	if err != nil {
		return nil, err
	}

	var found []*member.Member
	for _, details := range members {
		if details.Member.LastName == last && details.Member.FirstName == first {
			found = append(found, details.Member)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: no member named %s %s", usecase.ErrNotFound, first, last)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%d members named %s %s", len(found), first, last)
	}
}

func parseKindArg(raw string) (member.Kind, error) {
	kind, err := member.ParseKind(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return kind, nil
}
