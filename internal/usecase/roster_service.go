package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/rosterfile"
	idgen "github.com/riskibarqy/wrestling-roster/internal/platform/id"
	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
)

const defaultWorkers = 4

// rosterExtensions are the files OpenDirectory treats as rosters.
var rosterExtensions = []string{".txt", ".csv"}

// LoadResult pairs a loaded team snapshot with the per-line load report.
type LoadResult struct {
	Path   string
	Team   *team.Team
	Report rosterfile.Report
}

type TeamSummary struct {
	Name     string
	FilePath string
	Members  int
}

type SaveResult struct {
	Team string
	Path string
	Err  error
}

// MemberDetails is a member snapshot with its derived weight category. The
// category is nil for coaches.
type MemberDetails struct {
	Member         *member.Member
	WeightCategory *float64
}

// RosterService is the workspace of open teams. Every operation goes through
// the service lock because the team aggregate itself is not goroutine safe.
type RosterService struct {
	mu      sync.RWMutex
	order   []string
	teams   map[string]*team.Team
	codec   *rosterfile.Codec
	archive team.Repository
	table   team.CategoryTable
	idGen   idgen.Generator
	logger  *logging.Logger
	workers int
}

func NewRosterService(
	codec *rosterfile.Codec,
	archive team.Repository,
	table team.CategoryTable,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}

	return &RosterService{
		teams:   make(map[string]*team.Team),
		codec:   codec,
		archive: archive,
		table:   table,
		idGen:   idGen,
		logger:  logger,
		workers: defaultWorkers,
	}
}

// WithWorkers sets the worker count used by OpenDirectory and SaveAll.
func (s *RosterService) WithWorkers(n int) *RosterService {
	if n > 0 {
		s.workers = n
	}
	return s
}

func (s *RosterService) CreateTeam(ctx context.Context, name string) (*team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreateTeam")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := team.New(name)
	if err := s.register(item); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "team created", "team", name)

	return item.Clone(), nil
}

func (s *RosterService) OpenFile(ctx context.Context, path string) (LoadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.OpenFile")
	defer span.End()

	path = strings.TrimSpace(path)
	if path == "" {
		return LoadResult{}, fmt.Errorf("%w: path is required", ErrInvalidInput)
	}

	item, report, err := s.codec.Load(ctx, path)
	if err != nil {
		return LoadResult{}, mapCodecError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.register(item); err != nil {
		return LoadResult{}, err
	}

	return LoadResult{Path: path, Team: item.Clone(), Report: report}, nil
}

// ImportTeam decodes roster text from r into a new open team called name. The
// team has no file path until it is saved with an explicit one.
func (s *RosterService) ImportTeam(ctx context.Context, name string, r io.Reader) (LoadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ImportTeam")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return LoadResult{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item, report, err := s.codec.Decode(ctx, r, name)
	if err != nil {
		return LoadResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.register(item); err != nil {
		return LoadResult{}, err
	}

	return LoadResult{Team: item.Clone(), Report: report}, nil
}

// OpenDirectory loads every roster file in dir concurrently. Teams that load
// are opened even when other files fail; the failures are joined into the
// returned error.
func (s *RosterService) OpenDirectory(ctx context.Context, dir string) ([]LoadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.OpenDirectory")
	defer span.End()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("read roster directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(rosterExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	loaded := make([]LoadResult, len(paths))
	p := pool.New().WithMaxGoroutines(s.workers).WithErrors()
	for i, path := range paths {
		i, path := i, path
		p.Go(func() error {
			item, report, err := s.codec.Load(ctx, path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, mapCodecError(err))
			}
			loaded[i] = LoadResult{Path: path, Team: item, Report: report}
			return nil
		})
	}
	loadErr := p.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LoadResult, 0, len(loaded))
	var errs []error
	if loadErr != nil {
		errs = append(errs, loadErr)
	}
	for _, result := range loaded {
		if result.Team == nil {
			continue
		}
		if err := s.register(result.Team); err != nil {
			errs = append(errs, err)
			continue
		}
		result.Team = result.Team.Clone()
		out = append(out, result)
	}

	s.logger.InfoContext(ctx, "roster directory opened", "dir", dir, "files", len(paths), "opened", len(out))
	return out, errors.Join(errs...)
}

func (s *RosterService) ListTeams(ctx context.Context) []TeamSummary {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTeams")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TeamSummary, 0, len(s.order))
	for _, name := range s.order {
		item := s.teams[name]
		out = append(out, TeamSummary{
			Name:     item.Name,
			FilePath: item.FilePath,
			Members:  item.TotalMembers(),
		})
	}
	return out
}

func (s *RosterService) GetTeam(ctx context.Context, name string) (*team.Team, error) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.GetTeam", attribute.String("team", name))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return item.Clone(), nil
}

// CloseTeam drops the team from the workspace without saving it.
func (s *RosterService) CloseTeam(ctx context.Context, name string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CloseTeam", attribute.String("team", name))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(name); err != nil {
		return err
	}
	delete(s.teams, name)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == name })
	s.logger.InfoContext(ctx, "team closed", "team", name)

	return nil
}

// SaveTeam writes the team to path, or to its current file when path is empty.
func (s *RosterService) SaveTeam(ctx context.Context, name, path string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SaveTeam", attribute.String("team", name))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.lookup(name)
	if err != nil {
		return err
	}

	path = strings.TrimSpace(path)
	if path == "" {
		err = s.codec.Save(ctx, item)
	} else {
		err = s.codec.SaveAs(ctx, item, path)
	}
	if err != nil {
		return mapCodecError(err)
	}
	return nil
}

// SaveAll writes every open team that has a file path. Teams without one are
// reported as failures; other teams are still saved.
func (s *RosterService) SaveAll(ctx context.Context) ([]SaveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SaveAll")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]SaveResult, len(s.order))
	if len(results) == 0 {
		return results, nil
	}

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for i, name := range s.order {
		i, item := i, s.teams[name]
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			result := SaveResult{Team: item.Name, Path: item.FilePath}
			if err := s.codec.Save(ctx, item); err != nil {
				result.Err = mapCodecError(err)
				s.logger.WarnContext(ctx, "save team failed", "team", item.Name, "error", err)
			}
			results[i] = result
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit save to worker pool: %w", err)
		}
	}
	workers.Wait()

	var errs []error
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", result.Team, result.Err))
		}
	}
	return results, errors.Join(errs...)
}

// AddMember assigns the member a fresh ID and appends it to its kind partition.
func (s *RosterService) AddMember(ctx context.Context, teamName string, m *member.Member) (*member.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddMember", attribute.String("team", teamName))
	defer span.End()

	if m == nil {
		return nil, fmt.Errorf("%w: member is required", ErrInvalidInput)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.lookup(teamName)
	if err != nil {
		return nil, err
	}

	added := m.Clone()
	if added.ID, err = s.idGen.NewID(); err != nil {
		return nil, fmt.Errorf("generate member id: %w", err)
	}
	if err := item.AddMember(added.Kind(), added); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.logger.InfoContext(ctx, "member added", "team", teamName, "member_id", added.ID, "kind", added.Kind())

	return added.Clone(), nil
}

// UpdateMember replaces the fields of an existing member. The kind cannot be
// changed here; use ChangeMemberKind.
func (s *RosterService) UpdateMember(ctx context.Context, teamName, memberID string, m *member.Member) (*member.Member, error) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateMember", attribute.String("team", teamName))
	defer span.End()

	if m == nil {
		return nil, fmt.Errorf("%w: member is required", ErrInvalidInput)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, existing, err := s.lookupMember(teamName, memberID)
	if err != nil {
		return nil, err
	}
	if existing.Kind() != m.Kind() {
		return nil, fmt.Errorf("%w: member is a %s, got %s", ErrInvalidInput, existing.Kind(), m.Kind())
	}

	updated := m.Clone()
	updated.ID = existing.ID
	*existing = *updated

	return existing.Clone(), nil
}

func (s *RosterService) RemoveMember(ctx context.Context, teamName, memberID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemoveMember", attribute.String("team", teamName))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	item, existing, err := s.lookupMember(teamName, memberID)
	if err != nil {
		return err
	}
	item.RemoveMember(existing.Kind(), existing)
	s.logger.InfoContext(ctx, "member removed", "team", teamName, "member_id", memberID)

	return nil
}

func (s *RosterService) ChangeMemberKind(ctx context.Context, teamName, memberID string, kind member.Kind) (*member.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ChangeMemberKind", attribute.String("team", teamName))
	defer span.End()

	if _, err := member.ParseKind(string(kind)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, existing, err := s.lookupMember(teamName, memberID)
	if err != nil {
		return nil, err
	}

	from := existing.Kind()
	replacement, err := item.ChangeKind(existing, kind)
	if err != nil {
		return nil, fmt.Errorf("change member kind: %w", err)
	}
	s.logger.InfoContext(ctx, "member kind changed", "team", teamName, "member_id", memberID, "from", from, "to", kind)

	return replacement.Clone(), nil
}

// ListMembers returns member snapshots of one kind, or of every kind when kind
// is empty.
func (s *RosterService) ListMembers(ctx context.Context, teamName string, kind member.Kind) ([]MemberDetails, error) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.ListMembers", attribute.String("team", teamName))
	defer span.End()

	if kind != "" {
		if _, err := member.ParseKind(string(kind)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := s.lookup(teamName)
	if err != nil {
		return nil, err
	}

	members := item.All()
	if kind != "" {
		members = item.Members(kind)
	}

	out := make([]MemberDetails, 0, len(members))
	for _, m := range members {
		details := MemberDetails{Member: m.Clone()}
		if m.Kind() == member.KindWrestler {
			category, err := m.WeightCategory(s.table)
			if err != nil {
				return nil, fmt.Errorf("classify %s: %w", m.FullName(), err)
			}
			details.WeightCategory = &category
		}
		out = append(out, details)
	}
	return out, nil
}

func (s *RosterService) Statistics(ctx context.Context, teamName string) (team.Statistics, error) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.Statistics", attribute.String("team", teamName))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := s.lookup(teamName)
	if err != nil {
		return team.Statistics{}, err
	}
	return item.Statistics(), nil
}

func (s *RosterService) WeightBreakdown(ctx context.Context, teamName string) ([]team.BreakdownEntry, error) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.WeightBreakdown", attribute.String("team", teamName))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := s.lookup(teamName)
	if err != nil {
		return nil, err
	}

	entries, err := item.WeightBreakdown(s.table)
	if err != nil {
		return nil, fmt.Errorf("weight breakdown: %w", err)
	}
	return entries, nil
}

func (s *RosterService) Attributes(kind member.Kind) ([]member.Attribute, error) {
	if _, err := member.ParseKind(string(kind)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return member.Attributes(kind), nil
}

// ArchiveTeam stores a copy of the open team in the archive.
func (s *RosterService) ArchiveTeam(ctx context.Context, name string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ArchiveTeam", attribute.String("team", name))
	defer span.End()

	s.mu.RLock()
	item, err := s.lookup(name)
	if err != nil {
		s.mu.RUnlock()
		return err
	}
	snapshot := item.Clone()
	s.mu.RUnlock()

	if err := s.archive.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("%w: archive team: %v", ErrDependencyUnavailable, err)
	}
	s.logger.InfoContext(ctx, "team archived", "team", name, "members", snapshot.TotalMembers())

	return nil
}

// RestoreTeam opens an archived team in the workspace.
func (s *RosterService) RestoreTeam(ctx context.Context, name string) (*team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RestoreTeam", attribute.String("team", name))
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item, exists, err := s.archive.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: get archived team: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: archived team=%s", ErrNotFound, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.register(item); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "team restored", "team", name, "members", item.TotalMembers())

	return item.Clone(), nil
}

func (s *RosterService) ListArchived(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListArchived")
	defer span.End()

	names, err := s.archive.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list archived teams: %v", ErrDependencyUnavailable, err)
	}
	return names, nil
}

// register adds item to the workspace. Callers hold s.mu.
func (s *RosterService) register(item *team.Team) error {
	if _, exists := s.teams[item.Name]; exists {
		return fmt.Errorf("%w: team=%s is already open", ErrConflict, item.Name)
	}
	s.teams[item.Name] = item
	s.order = append(s.order, item.Name)
	return nil
}

func (s *RosterService) lookup(name string) (*team.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	item, ok := s.teams[name]
	if !ok {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, name)
	}
	return item, nil
}

func (s *RosterService) lookupMember(teamName, memberID string) (*team.Team, *member.Member, error) {
	item, err := s.lookup(teamName)
	if err != nil {
		return nil, nil, err
	}
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, nil, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}
	m, ok := item.FindByID(memberID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: member=%s team=%s", ErrNotFound, memberID, teamName)
	}
	return item, m, nil
}

func mapCodecError(err error) error {
	switch {
	case errors.Is(err, rosterfile.ErrFileNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, rosterfile.ErrNoFilePath), errors.Is(err, rosterfile.ErrUnencodableField):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return err
	}
}
