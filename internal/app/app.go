package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/wrestling-roster/internal/config"
	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/repository/breaker"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/rosterfile"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/weightconfig"
	"github.com/riskibarqy/wrestling-roster/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/wrestling-roster/internal/platform/cache"
	idgen "github.com/riskibarqy/wrestling-roster/internal/platform/id"
	"github.com/riskibarqy/wrestling-roster/internal/platform/logging"
	"github.com/riskibarqy/wrestling-roster/internal/platform/resilience"
	"github.com/riskibarqy/wrestling-roster/internal/usecase"
)

// NewHTTPServer wires the roster service and its HTTP API. The returned
// cleanup closes the archive connection, if any.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	table, err := weightconfig.NewProvider(cfg.WeightCategoriesPath).Table(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load weight categories: %w", err)
	}

	archive, cleanup, err := newArchive(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ids := idgen.NewUUIDGenerator()
	codec := rosterfile.NewCodec(table, ids, logger)
	rosterSvc := usecase.NewRosterService(codec, archive, table, ids, logger).WithWorkers(cfg.SaveWorkers)

	if cfg.RosterDir != "" {
		results, err := rosterSvc.OpenDirectory(ctx, cfg.RosterDir)
		if err != nil {
			logger.Warn("roster directory opened with errors", "dir", cfg.RosterDir, "error", err)
		}
		logger.Info("roster directory preloaded", "dir", cfg.RosterDir, "teams", len(results))
	}

	handler := httpapi.NewHandler(rosterSvc, cfg.RosterDir, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newArchive(ctx context.Context, cfg config.Config, logger *logging.Logger) (team.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.ArchiveBackend {
	case config.ArchivePostgres:
		db, err := OpenArchiveDB(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}

		var archive team.Repository = postgres.NewTeamRepository(db)
		if cfg.ArchiveBreakerEnabled {
			archive = breaker.NewTeamRepository(archive, resilience.NewCircuitBreaker(resilience.Settings{
				FailureThreshold: cfg.ArchiveBreakerFailures,
				OpenTimeout:      cfg.ArchiveBreakerOpenTimeout,
			}), logger)
		}
		if cfg.CacheEnabled {
			archive = cache.NewTeamRepository(archive, basecache.NewStore[[]string](cfg.CacheTTL))
		}
		logger.Info("team archive ready",
			"backend", cfg.ArchiveBackend,
			"cache_enabled", cfg.CacheEnabled,
			"breaker_enabled", cfg.ArchiveBreakerEnabled,
		)
		return archive, db.Close, nil
	default:
		logger.Info("team archive ready", "backend", config.ArchiveMemory)
		return memory.NewTeamRepository(), noop, nil
	}
}
