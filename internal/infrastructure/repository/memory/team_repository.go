package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
)

// TeamRepository is an in-process team archive. It stores deep copies so
// callers can keep editing the team they archived.
type TeamRepository struct {
	mu    sync.RWMutex
	order []string
	teams map[string]*team.Team
}

func NewTeamRepository(teams ...*team.Team) *TeamRepository {
	r := &TeamRepository{teams: make(map[string]*team.Team)}
	for _, item := range teams {
		_ = r.Save(context.Background(), item)
	}
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.order))
	out = append(out, r.order...)

	return out, nil
}

func (r *TeamRepository) Get(_ context.Context, name string) (*team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[name]
	if !ok {
		return nil, false, nil
	}

	return item.Clone(), true, nil
}

func (r *TeamRepository) Save(_ context.Context, item *team.Team) error {
	if item == nil || strings.TrimSpace(item.Name) == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[item.Name]; !ok {
		r.order = append(r.order, item.Name)
	}
	r.teams[item.Name] = item.Clone()

	return nil
}

func (r *TeamRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[name]; !ok {
		return nil
	}
	delete(r.teams, name)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == name })

	return nil
}
