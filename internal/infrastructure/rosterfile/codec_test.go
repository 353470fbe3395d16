package rosterfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/domain/weightclass"
	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
)

const sampleRoster = "Coach,Smith,Bob,Male,Central,5,Hands-on\n" +
	"Wrestler,Doe,Ann,Female,Central,2,03/15/2006,52.5,55,10,4,60,3,Active,false\n" +
	"Wrestler,Roe,Ben,Male,North,1,11/02/2005,65,65,3,3,20,1,Injured,true\n" +
	"Coach,Lee,Kim,Female,North,12,Support\n"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()

	table, err := weightclass.NewTable([]weightclass.Entry{
		{Gender: member.GenderMale, Weights: []float64{61, 65, 70}},
		{Gender: member.GenderFemale, Weights: []float64{50, 55}},
	})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return NewCodec(table, nil, logging.NewNop())
}

func writeRoster(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

func TestCodec_LoadRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	path := writeRoster(t, "Varsity.txt", sampleRoster)

	item, report, err := codec.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if item.Name != "Varsity" || item.FilePath != path {
		t.Fatalf("unexpected team identity: name=%q path=%q", item.Name, item.FilePath)
	}
	if report.Errors != 0 || report.Loaded != 4 || report.Lines != 4 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if item.Count(member.KindCoach) != 2 || item.Count(member.KindWrestler) != 2 {
		t.Fatalf("unexpected partition sizes")
	}

	ann := item.Members(member.KindWrestler)[0]
	if ann.ID == "" {
		t.Fatalf("expected decoded member to get an id")
	}
	if ann.Wrestler.Wins != 10 || ann.Wrestler.TotalPoints != 60 || ann.Wrestler.WinsByPin != 3 {
		t.Fatalf("unexpected wrestler tallies: %+v", ann.Wrestler)
	}

	var out bytes.Buffer
	if err := codec.Encode(&out, item); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "Coach,Smith,Bob,Male,Central,5,Hands-on\n" +
		"Coach,Lee,Kim,Female,North,12,Support\n" +
		"Wrestler,Doe,Ann,Female,Central,2,03/15/2006,52.5,55,10,4,60,3,Active,false\n" +
		"Wrestler,Roe,Ben,Male,North,1,11/02/2005,65,65,3,3,20,1,Injured,true\n"
	if out.String() != want {
		t.Fatalf("unexpected encoding:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestCodec_LoadToleratesBadLines(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	codec := newTestCodec(t)
	codec.logger = logging.NewConsole(&logs, logging.LevelDebug)

	content := "Referee,Ump,Joe,Male,Central,3\n" +
		"\n" +
		"Coach,Smith,Bob,Male,Central,5\n" +
		"Wrestler,Doe,Ann,Female,Central,2,03/15/2006,52.5,55,10,4,60,3,Active,false\n"
	path := writeRoster(t, "Mixed.txt", content)

	item, report, err := codec.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if report.Errors != 2 || report.Loaded != 1 || report.Lines != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if item.TotalMembers() != 1 || item.Count(member.KindWrestler) != 1 {
		t.Fatalf("expected the valid wrestler to survive, got %d members", item.TotalMembers())
	}

	if report.Issues[0].Line != 1 || !errors.Is(report.Issues[0].Err, member.ErrUnknownKind) {
		t.Fatalf("unexpected first issue: %+v", report.Issues[0])
	}
	var parseErr *member.ParseError
	if report.Issues[1].Line != 3 || !errors.As(report.Issues[1].Err, &parseErr) {
		t.Fatalf("expected a parse error on line 3, got %+v", report.Issues[1])
	}
	if !errors.Is(parseErr, member.ErrMissingFields) {
		t.Fatalf("expected missing fields, got %v", parseErr)
	}
	if !strings.Contains(logs.String(), "roster loaded with errors") {
		t.Fatalf("expected summary warning in logs, got %q", logs.String())
	}
}

func TestCodec_UnknownTagOnly(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	item, report, err := codec.Decode(context.Background(), strings.NewReader("Referee,a,b,Male,c,1\n"), "Refs")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Errors != 1 || item.TotalMembers() != 0 {
		t.Fatalf("unexpected result: report=%+v members=%d", report, item.TotalMembers())
	}
}

func TestCodec_LoadMissingFile(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	_, _, err := codec.Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestCodec_SaveIsIdempotent(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	ctx := context.Background()
	path := writeRoster(t, "Varsity.txt", sampleRoster)

	item, _, err := codec.Load(ctx, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	firstPath := filepath.Join(t.TempDir(), "first.txt")
	if err := codec.SaveAs(ctx, item, firstPath); err != nil {
		t.Fatalf("save as: %v", err)
	}
	reloaded, _, err := codec.Load(ctx, firstPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	secondPath := filepath.Join(t.TempDir(), "second.txt")
	if err := codec.SaveAs(ctx, reloaded, secondPath); err != nil {
		t.Fatalf("second save: %v", err)
	}

	first, err := os.ReadFile(firstPath)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	second, err := os.ReadFile(secondPath)
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("save is not idempotent:\n%s\n---\n%s", first, second)
	}
}

func TestCodec_SaveErrors(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	ctx := context.Background()
	path := writeRoster(t, "Varsity.txt", sampleRoster)

	item, _, err := codec.Load(ctx, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	item.Members(member.KindCoach)[0].School = "Central, East"
	if err := codec.Save(ctx, item); !errors.Is(err, ErrUnencodableField) {
		t.Fatalf("expected ErrUnencodableField, got %v", err)
	}
	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read roster: %v", err)
	}
	if string(onDisk) != sampleRoster {
		t.Fatalf("failed save must leave the file untouched")
	}

	item.FilePath = ""
	if err := codec.Save(ctx, item); !errors.Is(err, ErrNoFilePath) {
		t.Fatalf("expected ErrNoFilePath, got %v", err)
	}
}

func TestTeamName(t *testing.T) {
	t.Parallel()

	if got := TeamName("/data/rosters/Junior Varsity.txt"); got != "Junior Varsity" {
		t.Fatalf("unexpected team name: %q", got)
	}
}
