package cache

import (
	"context"

	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
	basecache "github.com/riskibarqy/wrestling-roster/internal/platform/cache"
)

const teamListKey = "team:list"

// TeamRepository caches the archive listing in front of a slower archive.
// Team contents are never cached; Get always reaches the next repository.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store[[]string]
}

func NewTeamRepository(next team.Repository, cache *basecache.Store[[]string]) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]string, error) {
	items, err := r.cache.GetOrLoad(ctx, teamListKey, func(ctx context.Context) ([]string, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]string(nil), items...), nil
}

func (r *TeamRepository) Get(ctx context.Context, name string) (*team.Team, bool, error) {
	return r.next.Get(ctx, name)
}

func (r *TeamRepository) Save(ctx context.Context, item *team.Team) error {
	defer r.cache.Delete(ctx, teamListKey)
	return r.next.Save(ctx, item)
}

func (r *TeamRepository) Delete(ctx context.Context, name string) error {
	defer r.cache.Delete(ctx, teamListKey)
	return r.next.Delete(ctx, name)
}
