package observability

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/wrestling-roster/internal/config"
	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
)

// Telemetry owns the process-wide tracing and profiling exporters.
type Telemetry struct {
	shutdownTracing func(context.Context) error
	profiler        *pyroscope.Profiler
}

// Setup starts every exporter the configuration enables. Disabled exporters
// are skipped, so the returned Telemetry is always safe to shut down.
func Setup(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}

	t := &Telemetry{shutdownTracing: startTracing(cfg, logger)}

	profiler, err := startProfiling(cfg, logger)
	if err != nil {
		_ = t.shutdownTracing(context.Background())
		return nil, crerr.Wrap(err, "start pyroscope")
	}
	t.profiler = profiler
	return t, nil
}

// Shutdown stops profiling, then flushes and stops tracing.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.profiler != nil {
		if err := t.profiler.Stop(); err != nil {
			errs = append(errs, crerr.Wrap(err, "stop pyroscope"))
		}
	}
	if err := t.shutdownTracing(ctx); err != nil {
		errs = append(errs, crerr.Wrap(err, "shutdown uptrace"))
	}
	return crerr.Join(errs...)
}
