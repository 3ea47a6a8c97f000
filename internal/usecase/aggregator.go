package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-standings/internal/domain/standings"
)

// Aggregator folds a document into a finalised standings table.
type Aggregator interface {
	Aggregate(ctx context.Context, doc standings.Document) (standings.Table, error)
}

type SequentialAggregator struct{}

func (SequentialAggregator) Aggregate(_ context.Context, doc standings.Document) (standings.Table, error) {
	return standings.ComputeStandings(doc), nil
}

// PoolAggregator folds every matchday on an ants worker pool and merges the
// partial tables. The merge is commutative, so the result matches the
// sequential fold regardless of completion order.
type PoolAggregator struct {
	workers int
}

func NewPoolAggregator(workers int) *PoolAggregator {
	if workers < 1 {
		workers = 1
	}
	return &PoolAggregator{workers: workers}
}

func (a *PoolAggregator) Aggregate(ctx context.Context, doc standings.Document) (standings.Table, error) {
	ctx, span := startSpan(ctx, "usecase.PoolAggregator.Aggregate")
	defer span.End()

	table := standings.NewTable(doc.Roster...)
	if len(doc.Matchdays) == 0 {
		return table.Finalize(), nil
	}

	pool, err := ants.NewPool(min(a.workers, len(doc.Matchdays)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	partials := make(chan standings.Table, len(doc.Matchdays))
	var workers sync.WaitGroup
	for _, md := range doc.Matchdays {
		if err := ctx.Err(); err != nil {
			workers.Wait()
			return nil, err
		}

		md := md
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			partial, _ := standings.AggregateMatchday(md)
			partials <- partial
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit matchday to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(partials)

	for partial := range partials {
		table.Merge(partial)
	}
	return table.Finalize(), nil
}
