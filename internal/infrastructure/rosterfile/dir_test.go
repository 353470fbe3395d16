package rosterfile

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir_Resolve(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "varsity.txt"), []byte(""), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	dir := NewDir(root)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "existing file", input: "varsity.txt", want: filepath.Join(root, "varsity.txt")},
		{name: "new file", input: "jv.txt", want: filepath.Join(root, "jv.txt")},
		{name: "nested new file", input: "2026/jv.txt", want: filepath.Join(root, "2026", "jv.txt")},
		{name: "absolute inside", input: filepath.Join(root, "varsity.txt"), want: filepath.Join(root, "varsity.txt")},
		{name: "parent escape", input: "../secret.txt", wantErr: ErrOutsideRosterDir},
		{name: "nested escape", input: "a/../../secret.txt", wantErr: ErrOutsideRosterDir},
		{name: "absolute outside", input: filepath.Join(filepath.Dir(root), "secret.txt"), wantErr: ErrOutsideRosterDir},
		{name: "root itself", input: ".", wantErr: ErrOutsideRosterDir},
		{name: "empty", input: " ", wantErr: ErrOutsideRosterDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dir.Resolve(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDir_ResolveWithoutRoot(t *testing.T) {
	t.Parallel()

	if _, err := NewDir("").Resolve("varsity.txt"); !errors.Is(err, ErrNoRosterDir) {
		t.Fatalf("expected ErrNoRosterDir, got %v", err)
	}
}

func TestDir_ResolveRejectsSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}
	t.Parallel()

	root := t.TempDir()
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if _, err := NewDir(root).Resolve("link/secret.txt"); !errors.Is(err, ErrOutsideRosterDir) {
		t.Fatalf("expected ErrOutsideRosterDir through symlink, got %v", err)
	}
}
