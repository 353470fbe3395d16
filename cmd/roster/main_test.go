package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

const sampleRoster = "Coach,Smith,Bob,Male,Central,5,Hands-on\n" +
	"Wrestler,Doe,Ann,Female,Central,2,03/15/2006,52.5,54,10,4,60,3,Active,false\n" +
	"Referee,Nobody,Ned,Male,Central,1\n"

func writeRoster(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "varsity.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

func readRoster(t *testing.T, path string) string {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read roster: %v", err)
	}
	return string(raw)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"roster"}, args...))
	return out.String(), err
}

func TestValidate_ExitCodeOnErrors(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, sampleRoster)
	out, err := run(t, "validate", path)

	var exitErr cli.ExitCoder
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != exitRosterErrors {
		t.Fatalf("expected exit code %d, got %v", exitRosterErrors, err)
	}
	if !strings.Contains(out, "3 line(s), 2 loaded, 1 error(s)") || !strings.Contains(out, "line 3 [Referee]") {
		t.Fatalf("unexpected report: %q", out)
	}

	clean := writeRoster(t, "Coach,Smith,Bob,Male,Central,5,Support\n")
	if _, err := run(t, "validate", clean); err != nil {
		t.Fatalf("clean roster should validate: %v", err)
	}
}

func TestStatsAndBreakdown(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, sampleRoster)

	out, err := run(t, "stats", path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Total members", "Win percentage", "71.43", "Hands-on coaches"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q: %q", want, out)
		}
	}

	out, err = run(t, "breakdown", path)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if !strings.Contains(out, "Weight Category") || !strings.Contains(out, "54") {
		t.Fatalf("unexpected breakdown: %q", out)
	}
}

func TestStats_EmptyTeamPrintsNA(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, "Coach,Smith,Bob,Male,Central,5,Support\n")
	out, err := run(t, "stats", path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "n/a") {
		t.Fatalf("expected n/a ratios: %q", out)
	}
}

func TestMembers_FilterByKind(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, sampleRoster)
	out, err := run(t, "members", "--kind", "Wrestler", path)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if !strings.Contains(out, "Ann") || strings.Contains(out, "Bob") {
		t.Fatalf("unexpected members: %q", out)
	}

	if _, err := run(t, "members", "--kind", "Referee", path); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestNormalize_DropsBadLines(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, sampleRoster)
	target := filepath.Join(t.TempDir(), "clean.txt")
	if _, err := run(t, "normalize", "-o", target, path); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	got := readRoster(t, target)
	want := "Coach,Smith,Bob,Male,Central,5,Hands-on\n" +
		"Wrestler,Doe,Ann,Female,Central,2,03/15/2006,52.5,54,10,4,60,3,Active,false\n"
	if got != want {
		t.Fatalf("unexpected normalized roster:\n%s", got)
	}
	if readRoster(t, path) != sampleRoster {
		t.Fatalf("input should be untouched when -o is set")
	}
}

func TestEditCommands(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "juniors.txt")
	if _, err := run(t, "new", "Juniors", "-o", path); err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := readRoster(t, path); got != "" {
		t.Fatalf("expected empty roster, got %q", got)
	}

	if _, err := run(t, "add-coach", "--last", "Lee", "--first", "Kim", "--gender", "Female", "--school", "North", "--years", "12", "--type", "Support", path); err != nil {
		t.Fatalf("add-coach: %v", err)
	}
	if _, err := run(t, "add-wrestler", "--last", "Roe", "--first", "Ben", "--gender", "Male", "--school", "North",
		"--years", "1", "--birthdate", "11/2/2005", "--weight", "65", "--wins", "3", "--losses", "3",
		"--points", "20", "--pins", "1", "--status", "Injured", "--uniform", path); err != nil {
		t.Fatalf("add-wrestler: %v", err)
	}

	want := "Coach,Lee,Kim,Female,North,12,Support\n" +
		"Wrestler,Roe,Ben,Male,North,1,11/02/2005,65,65,3,3,20,1,Injured,true\n"
	if got := readRoster(t, path); got != want {
		t.Fatalf("unexpected roster after adds:\n%s", got)
	}

	if _, err := run(t, "add-wrestler", "--last", "Bad", "--first", "Pins", "--gender", "Male", "--school", "North",
		"--birthdate", "01/01/2006", "--weight", "60", "--wins", "1", "--pins", "2", path); err == nil {
		t.Fatalf("expected error when pins exceed wins")
	}

	if _, err := run(t, "retype", "--last", "Roe", "--first", "Ben", "--kind", "Coach", path); err != nil {
		t.Fatalf("retype: %v", err)
	}
	want = "Coach,Lee,Kim,Female,North,12,Support\n" +
		"Coach,Roe,Ben,Male,North,1,Hands-on\n"
	if got := readRoster(t, path); got != want {
		t.Fatalf("unexpected roster after retype:\n%s", got)
	}

	if _, err := run(t, "remove", "--last", "Lee", "--first", "Kim", path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := readRoster(t, path); got != "Coach,Roe,Ben,Male,North,1,Hands-on\n" {
		t.Fatalf("unexpected roster after remove:\n%s", got)
	}

	if _, err := run(t, "remove", "--last", "Lee", "--first", "Kim", path); err == nil {
		t.Fatalf("expected error removing a missing member")
	}
}

func TestEditCommands_KeepRosterWithBadLines(t *testing.T) {
	t.Parallel()

	commands := map[string][]string{
		"add-coach":    {"add-coach", "--last", "Lee", "--first", "Kim", "--gender", "Female", "--school", "North"},
		"add-wrestler": {"add-wrestler", "--last", "Roe", "--first", "Ben", "--gender", "Male", "--school", "North", "--birthdate", "11/02/2005", "--weight", "65"},
		"remove":       {"remove", "--last", "Smith", "--first", "Bob"},
		"retype":       {"retype", "--last", "Smith", "--first", "Bob", "--kind", "Wrestler"},
	}

	for name, args := range commands {
		t.Run(name, func(t *testing.T) {
			path := writeRoster(t, sampleRoster)

			_, err := run(t, append(args, path)...)
			var exitErr cli.ExitCoder
			if !errors.As(err, &exitErr) || exitErr.ExitCode() != exitRosterErrors {
				t.Fatalf("expected exit code %d, got %v", exitRosterErrors, err)
			}
			if !strings.Contains(err.Error(), "--force") {
				t.Fatalf("error should point at --force: %v", err)
			}
			if got := readRoster(t, path); got != sampleRoster {
				t.Fatalf("roster rewritten despite load errors:\n%s", got)
			}
		})
	}
}

func TestEditCommands_ForceDropsBadLines(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, sampleRoster)
	if _, err := run(t, "add-coach", "--force", "--last", "Lee", "--first", "Kim", "--gender", "Female", "--school", "North", path); err != nil {
		t.Fatalf("add-coach --force: %v", err)
	}

	want := "Coach,Smith,Bob,Male,Central,5,Hands-on\n" +
		"Coach,Lee,Kim,Female,North,0,Hands-on\n" +
		"Wrestler,Doe,Ann,Female,Central,2,03/15/2006,52.5,54,10,4,60,3,Active,false\n"
	if got := readRoster(t, path); got != want {
		t.Fatalf("unexpected roster after forced add:\n%s", got)
	}
}

func TestColumns(t *testing.T) {
	t.Parallel()

	out, err := run(t, "columns", "Wrestler")
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	if !strings.Contains(out, "Years Of Experience") || !strings.Contains(out, "Uniform Signed Out") {
		t.Fatalf("unexpected columns: %q", out)
	}

	if _, err := run(t, "columns", "Referee"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
