package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/domain/standings"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-standings/internal/infrastructure/source"
	"github.com/riskibarqy/league-standings/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-standings/internal/observability"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
	"github.com/riskibarqy/league-standings/internal/usecase"
	"golang.org/x/text/language"
)

// NewHTTPServer wires the results source, the standings service and the HTTP
// router. The returned cleanup releases resources held by the source.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger, metrics *observability.Metrics) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	resultsSource, cleanup, err := newResultsSource(ctx, cfg, logger.Named("source"), metrics)
	if err != nil {
		return nil, nil, err
	}

	standingsSvc, err := newStandingsService(cfg, resultsSource, logger, metrics)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = httpapi.NewClientRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.MetricsEnabled && metrics != nil {
		routerCfg.MetricsHandler = metrics.Handler()
	}

	httpLogger := logger.Named("http")
	handler := httpapi.NewHandler(standingsSvc, httpLogger)
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, httpLogger, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("standings service ready",
		"source", resultsSource.Name(),
		"participants", standingsSvc.Rules().Codes(),
		"parallel_workers", cfg.StandingsParallelWorkers,
		"cache_enabled", cfg.CacheEnabled,
	)

	return server, cleanup, nil
}

func newResultsSource(ctx context.Context, cfg config.Config, logger *logging.Logger, metrics *observability.Metrics) (standings.Source, func(), error) {
	noop := func() {}

	switch cfg.ResultsSource {
	case config.SourceFile:
		return source.NewFileSource(cfg.ResultsFile, logger), noop, nil
	case config.SourceHTTP:
		remote := source.NewRemoteSource(source.RemoteConfig{
			URL:        cfg.ResultsURL,
			Timeout:    cfg.ResultsTimeout,
			MaxRetries: cfg.ResultsMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ResultsCircuitEnabled,
				FailureThreshold: cfg.ResultsCircuitFailureCount,
				OpenTimeout:      cfg.ResultsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ResultsCircuitHalfOpenMaxReq,
			},
		})
		if metrics != nil {
			metrics.TrackBreaker(remote.Breaker())
		}
		return remote, noop, nil
	case config.SourcePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				logger.Warn("close database failed", "error", err)
			}
		}
		return postgres.NewResultsRepository(db), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported results source %q", cfg.ResultsSource)
	}
}

func newStandingsService(cfg config.Config, resultsSource standings.Source, logger *logging.Logger, metrics *observability.Metrics) (*usecase.StandingsService, error) {
	locale, err := language.Parse(cfg.StandingsLocale)
	if err != nil {
		return nil, fmt.Errorf("parse STANDINGS_LOCALE %q: %w", cfg.StandingsLocale, err)
	}

	var aggregator usecase.Aggregator = usecase.SequentialAggregator{}
	if cfg.StandingsParallelWorkers > 0 {
		aggregator = usecase.NewPoolAggregator(cfg.StandingsParallelWorkers)
	}

	svcCfg := usecase.StandingsServiceConfig{
		Rules:        standings.NewRules(cfg.ParticipantCodes),
		Locale:       locale,
		Aggregator:   aggregator,
		CacheEnabled: cfg.CacheEnabled,
		CacheTTL:     cfg.CacheTTL,
		LoadTimeout:  cfg.CacheLoadTimeout,
		Logger:       logger.Named("standings"),
	}
	if metrics != nil {
		svcCfg.Recorder = metrics
	}

	return usecase.NewStandingsService(resultsSource, svcCfg), nil
}
