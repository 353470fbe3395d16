package weightconfig

import (
	"context"

	"github.com/riskibarqy/wrestling-roster/internal/domain/weightclass"
	"github.com/riskibarqy/wrestling-roster/internal/platform/cache"
)

// Provider hands out the process-wide weight table. The first caller loads it;
// concurrent callers wait for that load instead of reading the file again.
type Provider struct {
	path  string
	store *cache.Store[*weightclass.Table]
	load  func(path string) (*weightclass.Table, error)
}

func NewProvider(path string) *Provider {
	return &Provider{
		path:  path,
		store: cache.NewStore[*weightclass.Table](0),
		load:  LoadFile,
	}
}

func (p *Provider) Table(ctx context.Context) (*weightclass.Table, error) {
	return p.store.GetOrLoad(ctx, "weights:"+p.path, func(context.Context) (*weightclass.Table, error) {
		return p.load(p.path)
	})
}
