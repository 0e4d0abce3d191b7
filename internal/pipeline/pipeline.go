package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	"github.com/couchcryptid/kismet-analyzer/internal/observability"
)

// Source yields capture rows in order and returns io.EOF after the last one.
type Source interface {
	Next(ctx context.Context) (domain.Row, error)
}

// Normalizer turns one row into an entity. keep is false when the entity was
// built but rejected by a filter. A non-nil error drops the row.
type Normalizer[T domain.Entity] interface {
	Normalize(ctx context.Context, row domain.Row) (entity T, keep bool, err error)
}

// Summary describes a completed run.
type Summary struct {
	Read       int       `json:"read"`
	Accepted   int       `json:"accepted"`
	Filtered   int       `json:"filtered"`
	Dropped    int       `json:"dropped"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration is the wall time of the run.
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Result holds the accepted entities in row source order.
type Result[T domain.Entity] struct {
	Entities []T
	Summary  Summary
}

// Pipeline drives a single synchronous pass over a row source.
type Pipeline[T domain.Entity] struct {
	source     Source
	normalizer Normalizer[T]
	logger     *slog.Logger
	metrics    *observability.Metrics

	done    atomic.Bool
	mu      sync.Mutex
	summary Summary
}

// New creates a Pipeline with the given stages and observability.
func New[T domain.Entity](src Source, n Normalizer[T], logger *slog.Logger, metrics *observability.Metrics) *Pipeline[T] {
	return &Pipeline[T]{
		source:     src,
		normalizer: n,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once a run has completed.
func (p *Pipeline[T]) CheckReadiness(_ context.Context) error {
	if !p.done.Load() {
		return errors.New("run has not completed yet")
	}
	return nil
}

// LastSummary returns the summary of the most recent run, or of the run in
// progress.
func (p *Pipeline[T]) LastSummary() Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summary
}

// Run reads every row, normalizes it and collects the accepted entities.
// Rows that fail to parse or normalize are dropped and counted; only a row
// source failure or cancellation ends the run early.
func (p *Pipeline[T]) Run(ctx context.Context) (Result[T], error) {
	p.metrics.RunInProgress.Set(1)
	defer p.metrics.RunInProgress.Set(0)

	var res Result[T]
	res.Summary.StartedAt = domain.Now()
	p.setSummary(res.Summary)
	p.logger.Info("run started")

	for {
		row, err := p.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Summary.FinishedAt = domain.Now()
			p.setSummary(res.Summary)
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			return res, fmt.Errorf("read row: %w", err)
		}

		res.Summary.Read++
		p.metrics.RowsRead.Inc()

		entity, keep, err := p.normalize(ctx, row)
		switch {
		case err != nil:
			p.logger.Warn("normalize failed, dropping row",
				"error", err,
				"devkey", row.Key,
				"type", row.Type,
			)
			res.Summary.Dropped++
			p.metrics.RowsDropped.Inc()
		case !keep:
			res.Summary.Filtered++
			p.metrics.RowsFiltered.Inc()
		default:
			res.Entities = append(res.Entities, entity)
			res.Summary.Accepted++
			p.metrics.RowsAccepted.Inc()
		}
	}

	res.Summary.FinishedAt = domain.Now()
	p.setSummary(res.Summary)
	p.metrics.RunDuration.Observe(res.Summary.Duration().Seconds())
	p.done.Store(true)

	p.logger.Info("run finished",
		"read", res.Summary.Read,
		"accepted", res.Summary.Accepted,
		"filtered", res.Summary.Filtered,
		"dropped", res.Summary.Dropped,
		"duration", res.Summary.Duration(),
	)
	return res, nil
}

// normalize isolates one row so that a panic in extraction drops the row
// instead of aborting the run.
func (p *Pipeline[T]) normalize(ctx context.Context, row domain.Row) (entity T, keep bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			entity, keep, err = zero, false, fmt.Errorf("normalize panic: %v", r)
		}
	}()
	return p.normalizer.Normalize(ctx, row)
}

func (p *Pipeline[T]) setSummary(s Summary) {
	p.mu.Lock()
	p.summary = s
	p.mu.Unlock()
}
