package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
	teammock "github.com/riskibarqy/wrestling-roster/internal/mocks/domain/team"
	basecache "github.com/riskibarqy/wrestling-roster/internal/platform/cache"
)

func TestTeamRepository_ListIsCachedUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, basecache.NewStore[[]string](time.Minute))

	next.On("List", mock.Anything).Return([]string{"Varsity"}, nil).Once()
	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	item := team.New("Junior")
	next.On("Save", mock.Anything, item).Return(nil).Once()
	require.NoError(t, repo.Save(ctx, item))

	next.On("List", mock.Anything).Return([]string{"Varsity", "Junior"}, nil).Once()
	third, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Varsity", "Junior"}, third)
}
