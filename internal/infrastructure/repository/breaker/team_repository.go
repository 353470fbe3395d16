package breaker

import (
	"context"
	"errors"

	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
	"github.com/riskibarqy/wrestling-roster/internal/platform/resilience"
)

// TeamRepository guards an archive with a circuit breaker so a database
// outage fails fast instead of holding requests for the full timeout.
type TeamRepository struct {
	next    team.Repository
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewTeamRepository(next team.Repository, breaker *resilience.CircuitBreaker, logger *logging.Logger) *TeamRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamRepository{next: next, breaker: breaker, logger: logger}
}

func (r *TeamRepository) List(ctx context.Context) ([]string, error) {
	var names []string
	err := r.call(ctx, "List", func() error {
		var err error
		names, err = r.next.List(ctx)
		return err
	})
	return names, err
}

func (r *TeamRepository) Get(ctx context.Context, name string) (*team.Team, bool, error) {
	var (
		item   *team.Team
		exists bool
	)
	err := r.call(ctx, "Get", func() error {
		var err error
		item, exists, err = r.next.Get(ctx, name)
		return err
	})
	return item, exists, err
}

func (r *TeamRepository) Save(ctx context.Context, item *team.Team) error {
	return r.call(ctx, "Save", func() error {
		return r.next.Save(ctx, item)
	})
}

func (r *TeamRepository) Delete(ctx context.Context, name string) error {
	return r.call(ctx, "Delete", func() error {
		return r.next.Delete(ctx, name)
	})
}

func (r *TeamRepository) call(ctx context.Context, op string, fn func() error) error {
	err := r.breaker.Execute(fn, callerGaveUp)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		r.logger.WarnContext(ctx, "team archive call rejected", "op", op, "state", r.breaker.State().String())
	}
	return err
}

// callerGaveUp reports errors that say nothing about the archive's health.
func callerGaveUp(err error) bool {
	return errors.Is(err, context.Canceled)
}
