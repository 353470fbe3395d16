package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
	teammock "github.com/riskibarqy/wrestling-roster/internal/mocks/domain/team"
	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
	"github.com/riskibarqy/wrestling-roster/internal/platform/resilience"
)

func TestTeamRepository_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	breaker := resilience.NewCircuitBreaker(resilience.Settings{FailureThreshold: 2, OpenTimeout: time.Hour})
	repo := NewTeamRepository(next, breaker, logging.NewNop())

	dbDown := errors.New("connection refused")
	next.On("List", mock.Anything).Return(nil, dbDown).Twice()

	for range 2 {
		_, err := repo.List(ctx)
		require.ErrorIs(t, err, dbDown)
	}

	_, _, err := repo.Get(ctx, "Varsity")
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	require.ErrorIs(t, repo.Save(ctx, team.New("Varsity")), resilience.ErrCircuitOpen)
	require.Equal(t, resilience.StateOpen, breaker.State())
}

func TestTeamRepository_PassesThroughResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, resilience.NewCircuitBreaker(resilience.Settings{FailureThreshold: 1}), nil)

	item := team.New("Varsity")
	next.On("Get", mock.Anything, "Varsity").Return(item, true, nil).Once()
	next.On("Get", mock.Anything, "Missing").Return(nil, false, nil).Once()
	next.On("Delete", mock.Anything, "Varsity").Return(context.Canceled).Once()
	next.On("Delete", mock.Anything, "Varsity").Return(nil).Once()

	got, exists, err := repo.Get(ctx, "Varsity")
	require.NoError(t, err)
	require.True(t, exists)
	require.Same(t, item, got)

	_, exists, err = repo.Get(ctx, "Missing")
	require.NoError(t, err)
	require.False(t, exists)

	require.ErrorIs(t, repo.Delete(ctx, "Varsity"), context.Canceled)
	require.NoError(t, repo.Delete(ctx, "Varsity"))
}
