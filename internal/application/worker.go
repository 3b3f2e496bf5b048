package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"
	"golang.org/x/time/rate"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

const (
	minRetryDelay        = 100 * time.Millisecond
	maxRetryDelay        = 300 * time.Millisecond
	defaultSubmitTimeout = 10 * time.Second
)

type WorkerOptions struct {
	StopOnSuccess bool
	// MaxRPS caps requests per second for one worker. Zero means unlimited.
	MaxRPS float64
	// ResolveMaxAttempts caps purchase URL polls per iteration. Zero means
	// poll until the gate opens.
	ResolveMaxAttempts int
	SubmitTimeout      time.Duration
}

// Worker drives one acquisition loop. Workers share the transport and the
// frozen template and nothing else.
type Worker struct {
	id        int
	runID     string
	endpoints ports.AcquisitionEndpoints
	template  domain.OrderTemplate
	recorder  ports.AttemptRecorder
	clock     ports.Clock
	logger    *slog.Logger
	opts      WorkerOptions
	limiter   *rate.Limiter

	backoff func() time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewWorker(id int, runID string, endpoints ports.AcquisitionEndpoints, template domain.OrderTemplate, recorder ports.AttemptRecorder, clock ports.Clock, logger *slog.Logger, opts WorkerOptions) *Worker {
	if recorder == nil {
		recorder = ports.NopAttemptRecorder{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = defaultSubmitTimeout
	}

	var limiter *rate.Limiter
	if opts.MaxRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.MaxRPS), 1)
	}

	return &Worker{
		id:        id,
		runID:     runID,
		endpoints: endpoints,
		template:  template,
		recorder:  recorder,
		clock:     clock,
		logger:    loggerOrDiscard(logger).With("worker", id),
		opts:      opts,
		limiter:   limiter,
		backoff:   retryDelay,
		sleep:     sleepContext,
	}
}

// Run loops until ctx is cancelled, or until the first accepted order when
// StopOnSuccess is set.
func (w *Worker) Run(ctx context.Context) domain.WorkerResult {
	result := domain.WorkerResult{Worker: w.id}
	w.logger.Info("worker started", "sku", w.template.Item.SKU)

	for iteration := 1; ctx.Err() == nil; iteration++ {
		attempt := w.iterate(ctx, iteration)
		result.Iterations = iteration

		if err := w.recorder.Record(attempt); err != nil {
			w.logger.Warn("record attempt failed", "attempt", attempt.ID, "error", err)
		}

		if attempt.Outcome != nil && attempt.Outcome.Succeeded() {
			if !result.Acquired {
				result.PurchaseURL = attempt.Outcome.PurchaseURL
			}
			result.Acquired = true
			if w.opts.StopOnSuccess {
				break
			}
		}

		delay := w.backoff()
		w.logger.Debug("retrying", "state", domain.StateRetry, "delay", delay)
		if err := w.sleep(ctx, delay); err != nil {
			break
		}
	}

	w.logger.Info("worker stopped", "iterations", result.Iterations, "acquired", result.Acquired)
	return result
}

// iterate runs one pass of the state machine. Panics are caught here so a
// worker never takes the process down.
func (w *Worker) iterate(ctx context.Context, iteration int) domain.AcquisitionAttempt {
	attempt := domain.AcquisitionAttempt{
		ID:        uuid.NewString(),
		RunID:     w.runID,
		Worker:    w.id,
		Iteration: iteration,
		StartedAt: w.clock.Now(),
		State:     domain.StateResolveURL,
	}

	var catcher panics.Catcher
	catcher.Try(func() { w.step(ctx, &attempt) })
	if recovered := catcher.Recovered(); recovered != nil {
		w.logger.Error("worker panic recovered",
			"iteration", iteration,
			"state", attempt.State,
			"panic", recovered.Value,
			"stack", string(recovered.Stack),
		)
		attempt.Err = fmt.Sprintf("panic in %s: %v", attempt.State, recovered.Value)
		attempt.State = domain.StateRetry
	}

	attempt.FinishedAt = w.clock.Now()
	return attempt
}

func (w *Worker) step(ctx context.Context, attempt *domain.AcquisitionAttempt) {
	sku := w.template.Item.SKU

	purchaseURL, err := w.resolve(ctx)
	if err != nil {
		w.fail(attempt, err)
		return
	}
	attempt.PurchaseURL = purchaseURL
	w.logger.Info("purchase url resolved", "iteration", attempt.Iteration, "url", purchaseURL)

	attempt.State = domain.StateWarmup
	if err := w.throttle(ctx); err != nil {
		w.fail(attempt, err)
		return
	}
	if err := w.endpoints.Warmup(ctx, purchaseURL, sku); err != nil {
		w.logger.Warn("warmup failed", "iteration", attempt.Iteration, "error", err)
	}

	attempt.State = domain.StateCheckout
	if err := w.throttle(ctx); err != nil {
		w.fail(attempt, err)
		return
	}
	if err := w.endpoints.Checkout(ctx, w.template.Item); err != nil {
		w.fail(attempt, fmt.Errorf("checkout: %w", err))
		return
	}

	attempt.State = domain.StateSubmit
	if err := w.throttle(ctx); err != nil {
		w.fail(attempt, err)
		return
	}
	// A submission already on the wire finishes even when the run is stopping.
	submitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.opts.SubmitTimeout)
	defer cancel()
	outcome, err := w.endpoints.Submit(submitCtx, w.template)
	if err != nil {
		w.fail(attempt, fmt.Errorf("submit: %w", err))
		return
	}
	attempt.Outcome = &outcome

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		attempt.State = domain.StateSuccess
		w.logger.Info("order accepted", "iteration", attempt.Iteration, "payment_url", outcome.PurchaseURL)
	case domain.OutcomeRejected:
		attempt.State = domain.StateRetry
		w.logger.Info("order rejected", "iteration", attempt.Iteration, "reason", outcome.Reason, "code", outcome.Code)
	default:
		attempt.State = domain.StateRetry
		w.logger.Warn("unreadable submit response", "iteration", attempt.Iteration, "reason", outcome.Reason)
	}
}

// resolve polls for the purchase URL until the gate opens, the optional cap
// is reached or ctx ends.
func (w *Worker) resolve(ctx context.Context) (string, error) {
	sku := w.template.Item.SKU
	for poll := 1; ; poll++ {
		if err := w.throttle(ctx); err != nil {
			return "", err
		}

		purchaseURL, err := w.endpoints.ResolvePurchaseURL(ctx, sku)
		if err == nil {
			return purchaseURL, nil
		}
		if !errors.Is(err, domain.ErrPurchaseURLUnavailable) {
			return "", fmt.Errorf("resolve purchase url: %w", err)
		}
		if w.opts.ResolveMaxAttempts > 0 && poll >= w.opts.ResolveMaxAttempts {
			return "", fmt.Errorf("%w after %d polls", err, poll)
		}

		delay := w.backoff()
		w.logger.Debug("purchase url not available", "poll", poll, "delay", delay)
		if err := w.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
}

func (w *Worker) fail(attempt *domain.AcquisitionAttempt, err error) {
	w.logger.Warn("iteration failed", "iteration", attempt.Iteration, "state", attempt.State, "error", err)
	attempt.Err = fmt.Sprintf("%s: %v", attempt.State, err)
	attempt.State = domain.StateRetry
}

func (w *Worker) throttle(ctx context.Context) error {
	if w.limiter == nil {
		return ctx.Err()
	}
	return w.limiter.Wait(ctx)
}

func retryDelay() time.Duration {
	return minRetryDelay + rand.N(maxRetryDelay-minRetryDelay+1)
}
