package rosterfile

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
	"github.com/riskibarqy/wrestling-roster/internal/platform/id"
	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
)

const (
	separator     = ","
	maxLineLength = 1 << 20
)

var (
	ErrFileNotFound     = crerr.New("roster file not found")
	ErrNoFilePath       = crerr.New("team has no file path")
	ErrUnencodableField = crerr.New("field cannot be written to a roster file")
)

// Issue describes one roster line that was skipped while loading.
type Issue struct {
	Line int
	Tag  string
	Err  error
}

// Report summarizes a load. Errors counts skipped lines; the team returned
// alongside it holds every line that decoded.
type Report struct {
	Lines  int
	Loaded int
	Errors int
	Issues []Issue
}

func (r *Report) skip(line int, tag string, err error) {
	r.Errors++
	r.Issues = append(r.Issues, Issue{Line: line, Tag: tag, Err: err})
}

// Codec reads and writes the line-oriented roster format:
//
//	Tag,field1,...,fieldN
//
// where Tag names the member kind and the fields follow member.Attributes order.
type Codec struct {
	classifier member.WeightClassifier
	ids        id.Generator
	logger     *logging.Logger
}

func NewCodec(classifier member.WeightClassifier, ids id.Generator, logger *logging.Logger) *Codec {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &Codec{
		classifier: classifier,
		ids:        ids,
		logger:     logger,
	}
}

// TeamName derives a team name from a roster path: the base name without its
// extension.
func TeamName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads the roster at path. A missing file returns ErrFileNotFound. Bad
// lines never fail the load; they are logged and counted in the Report.
func (c *Codec) Load(ctx context.Context, path string) (*team.Team, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Report{}, crerr.Wrapf(ErrFileNotFound, "%s", path)
		}
		return nil, Report{}, crerr.Wrapf(err, "open roster %q", path)
	}
	defer f.Close()

	item, report, err := c.Decode(ctx, f, TeamName(path))
	if err != nil {
		return nil, report, crerr.Wrapf(err, "read roster %q", path)
	}
	item.FilePath = path

	if report.Errors > 0 {
		c.logger.WarnContext(ctx, "roster loaded with errors",
			"path", path,
			"errors", report.Errors,
			"loaded", report.Loaded,
		)
	}
	return item, report, nil
}

// Decode parses roster lines from r into a new team called name.
func (c *Codec) Decode(ctx context.Context, r io.Reader, name string) (*team.Team, Report, error) {
	item := team.New(name)
	var report Report

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		report.Lines++

		fields := strings.Split(line, separator)
		tag := strings.TrimSpace(fields[0])
		if tag == "" {
			c.logger.WarnContext(ctx, "roster line has no type tag", "team", name, "line", lineNo)
			report.skip(lineNo, tag, crerr.Wrap(member.ErrUnknownKind, "missing type tag"))
			continue
		}

		m, err := member.Decode(tag, fields[1:])
		if err != nil {
			if crerr.Is(err, member.ErrUnknownKind) {
				c.logger.WarnContext(ctx, "roster line has unknown type tag", "team", name, "line", lineNo, "tag", tag)
			} else {
				c.logger.ErrorContext(ctx, "roster line failed to decode", "team", name, "line", lineNo, "tag", tag, "error", err)
			}
			report.skip(lineNo, tag, err)
			continue
		}

		if m.ID, err = c.ids.NewID(); err != nil {
			return nil, report, crerr.Wrap(err, "assign member id")
		}
		if err := item.AddMember(m.Kind(), m); err != nil {
			report.skip(lineNo, tag, err)
			continue
		}
		report.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return nil, report, crerr.Wrap(err, "scan roster")
	}

	return item, report, nil
}

// Save writes the team to its FilePath. The file is replaced atomically so a
// failed write never leaves a truncated roster behind.
func (c *Codec) Save(ctx context.Context, item *team.Team) error {
	if item == nil {
		return crerr.New("team is nil")
	}
	if strings.TrimSpace(item.FilePath) == "" {
		return crerr.Wrapf(ErrNoFilePath, "team %q", item.Name)
	}

	path := item.FilePath
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %q", path)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := c.Encode(tmp, item); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "encode team %q", item.Name)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "sync %q", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close %q", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return crerr.Wrapf(err, "replace %q", path)
	}
	committed = true

	c.logger.InfoContext(ctx, "roster saved", "team", item.Name, "path", path, "members", item.TotalMembers())
	return nil
}

// SaveAs points the team at path and saves it there.
func (c *Codec) SaveAs(ctx context.Context, item *team.Team, path string) error {
	if item == nil {
		return crerr.New("team is nil")
	}
	if strings.TrimSpace(path) == "" {
		return crerr.Wrapf(ErrNoFilePath, "team %q", item.Name)
	}
	previous := item.FilePath
	item.FilePath = path
	if err := c.Save(ctx, item); err != nil {
		item.FilePath = previous
		return err
	}
	return nil
}

// Encode writes every member, partition by partition in creation order, one
// line each.
func (c *Codec) Encode(w io.Writer, item *team.Team) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, kind := range item.Kinds() {
		for _, m := range item.Members(kind) {
			fields, err := member.Encode(m, c.classifier)
			if err != nil {
				return err
			}

			buf.Reset()
			_, _ = buf.WriteString(string(kind))
			for i, field := range fields {
				if strings.ContainsAny(field, ",\r\n") {
					attr := member.Attributes(kind)[i]
					return crerr.Wrapf(ErrUnencodableField, "%s %s: %s=%q", kind, m.FullName(), attr.Name, field)
				}
				_, _ = buf.WriteString(separator)
				_, _ = buf.WriteString(field)
			}
			_ = buf.WriteByte('\n')

			if _, err := w.Write(buf.B); err != nil {
				return crerr.Wrap(err, "write roster line")
			}
		}
	}
	return nil
}
