package rosterfile

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrNoRosterDir      = crerr.New("no roster directory configured")
	ErrOutsideRosterDir = crerr.New("path is outside the roster directory")
)

// Dir confines caller-supplied roster paths to one directory. Relative paths
// are joined to it; absolute paths must already point inside it. Symlinks are
// resolved so a link cannot lead out of the directory.
type Dir struct {
	root string
}

func NewDir(root string) Dir {
	return Dir{root: strings.TrimSpace(root)}
}

func (d Dir) Root() string {
	return d.root
}

// Resolve returns the cleaned absolute path for name inside the directory.
func (d Dir) Resolve(name string) (string, error) {
	if d.root == "" {
		return "", ErrNoRosterDir
	}
	root, err := filepath.Abs(d.root)
	if err != nil {
		return "", crerr.Wrapf(ErrNoRosterDir, "resolve %q: %v", d.root, err)
	}

	name = strings.TrimSpace(name)
	target := name
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	target = filepath.Clean(target)
	if name == "" || target == root || !inside(root, target) {
		return "", crerr.Wrapf(ErrOutsideRosterDir, "%q", name)
	}

	if err := checkLinks(root, target); err != nil {
		return "", crerr.Wrapf(err, "%q", name)
	}
	return target, nil
}

func inside(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && filepath.IsLocal(rel)
}

// checkLinks resolves the deepest existing ancestor of target (target itself
// when it exists) and requires it to stay under the resolved root.
func checkLinks(root, target string) error {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return crerr.Wrapf(ErrNoRosterDir, "%v", err)
	}

	for cur := target; ; {
		real, err := filepath.EvalSymlinks(cur)
		if err == nil {
			if !inside(realRoot, real) {
				return ErrOutsideRosterDir
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return crerr.Wrap(err, "resolve roster path")
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ErrOutsideRosterDir
		}
		cur = parent
	}
}
