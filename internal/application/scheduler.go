package application

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

const (
	// fineWindow is how long before the target the coarse timer hands over
	// to short re-checks of the wall clock.
	fineWindow = 20 * time.Millisecond
	fineStep   = time.Millisecond
)

type Scheduler struct {
	clock  ports.Clock
	rule   domain.ScheduleRule
	logger *slog.Logger
}

func NewScheduler(clock ports.Clock, rule domain.ScheduleRule, logger *slog.Logger) *Scheduler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Scheduler{clock: clock, rule: rule, logger: loggerOrDiscard(logger)}
}

func (s *Scheduler) ComputeTarget() domain.ScheduledInstant {
	return domain.ComputeTarget(s.clock.Now(), s.rule)
}

// AwaitTarget blocks until the wall clock is strictly past the instant.
func (s *Scheduler) AwaitTarget(ctx context.Context, instant domain.ScheduledInstant) error {
	now := s.clock.Now()
	if instant.Reached(now) {
		return nil
	}
	s.logger.Info("waiting for target", "target", instant.At.Format(time.RFC3339Nano), "remaining", instant.Remaining(now))

	for {
		now = s.clock.Now()
		if instant.Reached(now) {
			s.logger.Info("target reached", "late_by", now.Sub(instant.At))
			return nil
		}

		wait := fineStep
		if remaining := instant.Remaining(now); remaining > fineWindow {
			wait = remaining - fineWindow
		}
		if err := sleepContext(ctx, wait); err != nil {
			return err
		}
	}
}

// WorkerFunc is one independent acquisition loop.
type WorkerFunc func(ctx context.Context, worker int) domain.WorkerResult

// FanOut starts k workers at once and returns their results, ordered by
// worker number, after every one of them has finished.
func (s *Scheduler) FanOut(ctx context.Context, k int, worker WorkerFunc) []domain.WorkerResult {
	if k <= 0 {
		return nil
	}

	p := pool.NewWithResults[domain.WorkerResult]().WithMaxGoroutines(k)
	for i := 1; i <= k; i++ {
		p.Go(func() domain.WorkerResult {
			return worker(ctx, i)
		})
	}
	s.logger.Info("workers launched", "count", k)

	results := p.Wait()
	sort.Slice(results, func(a, b int) bool { return results[a].Worker < results[b].Worker })
	return results
}
