package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/standings"
	"github.com/riskibarqy/league-standings/internal/platform/cache"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
	"golang.org/x/text/language"
)

const snapshotCacheKey = "standings:snapshot"

// StandingsRecorder receives compute telemetry. Implementations must be safe
// for concurrent use.
type StandingsRecorder interface {
	ObserveCompute(source string, elapsed time.Duration, teams, matches int)
	IncLoadFailure(source string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCompute(string, time.Duration, int, int) {}
func (nopRecorder) IncLoadFailure(string)                          {}

type StandingsServiceConfig struct {
	Rules        standings.Rules
	Locale       language.Tag
	Aggregator   Aggregator
	CacheEnabled bool
	CacheTTL     time.Duration
	// LoadTimeout bounds a cached source load shared by concurrent callers.
	LoadTimeout  time.Duration
	Recorder     StandingsRecorder
	Logger       *logging.Logger
}

type StandingsService struct {
	source     standings.Source
	rules      standings.Rules
	locale     language.Tag
	aggregator Aggregator
	cache      *cache.Store[standings.Snapshot]
	recorder   StandingsRecorder
	logger     *logging.Logger
	now        func() time.Time
}

func NewStandingsService(source standings.Source, cfg StandingsServiceConfig) *StandingsService {
	svc := &StandingsService{
		source:     source,
		rules:      cfg.Rules,
		locale:     cfg.Locale,
		aggregator: cfg.Aggregator,
		recorder:   cfg.Recorder,
		logger:     cfg.Logger,
		now:        time.Now,
	}
	if svc.locale == language.Und {
		svc.locale = standings.DefaultLocale
	}
	if svc.aggregator == nil {
		svc.aggregator = SequentialAggregator{}
	}
	if svc.recorder == nil {
		svc.recorder = nopRecorder{}
	}
	if svc.logger == nil {
		svc.logger = logging.NewNop()
	}
	if cfg.CacheEnabled {
		svc.cache = cache.NewStore[standings.Snapshot](cfg.CacheTTL).WithLoadTimeout(cfg.LoadTimeout)
	}
	return svc
}

func (s *StandingsService) Rules() standings.Rules {
	return s.rules
}

// Snapshot loads the configured source and computes the full standings view.
// Results are cached in memory and concurrent refreshes share one load.
func (s *StandingsService) Snapshot(ctx context.Context) (standings.Snapshot, error) {
	ctx, span := startSpan(ctx, "usecase.StandingsService.Snapshot")
	defer span.End()

	if s.cache == nil {
		return s.loadSnapshot(ctx)
	}
	return s.cache.GetOrLoad(ctx, snapshotCacheKey, s.loadSnapshot)
}

// Invalidate drops the cached snapshot so the next call reloads the source.
func (s *StandingsService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, snapshotCacheKey)
	}
}

func (s *StandingsService) loadSnapshot(ctx context.Context) (standings.Snapshot, error) {
	if s.source == nil {
		return standings.Snapshot{}, fmt.Errorf("%w: results source is not configured", ErrDependencyUnavailable)
	}

	name := s.source.Name()
	doc, err := s.source.Load(ctx)
	if err != nil {
		s.recorder.IncLoadFailure(name)
		s.logger.WarnContext(ctx, "load results document failed", "source", name, "error", err)
		return standings.Snapshot{}, fmt.Errorf("%w: load results from %s: %w", ErrDependencyUnavailable, name, err)
	}

	return s.compute(ctx, name, doc)
}

// Compute builds a snapshot from a caller supplied document.
func (s *StandingsService) Compute(ctx context.Context, doc standings.Document) (standings.Snapshot, error) {
	ctx, span := startSpan(ctx, "usecase.StandingsService.Compute")
	defer span.End()

	return s.compute(ctx, "request", doc)
}

func (s *StandingsService) compute(ctx context.Context, source string, doc standings.Document) (standings.Snapshot, error) {
	start := time.Now()

	doc = s.rules.ApplyAutoDraws(standings.NormalizeDocument(doc))
	table, err := s.aggregator.Aggregate(ctx, doc)
	if err != nil {
		return standings.Snapshot{}, fmt.Errorf("aggregate standings: %w", err)
	}

	snapshot := standings.Snapshot{
		LastUpdated: doc.LastUpdated,
		Table:       standings.Rank(table, s.locale),
		Matchdays: iter.Map(doc.Matchdays, func(md *standings.Matchday) standings.MatchdaySummary {
			return standings.SummarizeMatchday(*md)
		}),
		ComputedAt: s.now().UTC(),
	}

	elapsed := time.Since(start)
	matches := doc.MatchCount()
	s.recorder.ObserveCompute(source, elapsed, len(snapshot.Table), matches)
	s.logger.DebugContext(ctx, "standings computed",
		"source", source,
		"teams", len(snapshot.Table),
		"matchdays", len(snapshot.Matchdays),
		"matches", matches,
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return snapshot, nil
}

// Filter narrows a snapshot to one participant. A blank participant returns
// the snapshot unchanged.
func (s *StandingsService) Filter(snapshot standings.Snapshot, participant string) (standings.Snapshot, error) {
	participant = strings.TrimSpace(participant)
	if participant == "" {
		return snapshot, nil
	}
	if !s.rules.IsKnownCode(participant) {
		return standings.Snapshot{}, fmt.Errorf("%w: unknown participant %q", ErrInvalidInput, participant)
	}
	return s.rules.FilterByParticipant(snapshot, participant), nil
}
