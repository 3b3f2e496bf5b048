package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

type EngineDeps struct {
	Sessions    *SessionStore
	Transport   ports.SessionTransport
	Auth        *Authenticator
	Resolver    *OrderResolver
	Scheduler   *Scheduler
	Acquisition ports.AcquisitionEndpoints
	Recorder    ports.AttemptRecorder
	Runs        ports.RunRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Engine ties the session, the order context and the workers of one run.
type Engine struct {
	deps   EngineDeps
	worker WorkerOptions
	logger *slog.Logger
}

func NewEngine(deps EngineDeps, worker WorkerOptions) *Engine {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Recorder == nil {
		deps.Recorder = ports.NopAttemptRecorder{}
	}
	return &Engine{deps: deps, worker: worker, logger: loggerOrDiscard(deps.Logger)}
}

// RestoreSession loads the persisted session into the transport. It reports
// whether a session was found.
func (e *Engine) RestoreSession(ctx context.Context) (bool, error) {
	session, found, err := e.deps.Sessions.Load(ctx)
	if err != nil {
		return false, err
	}
	if !found {
		e.logger.Info("no stored session")
		return false, nil
	}
	e.deps.Transport.ImportSession(session)
	e.logger.Info("session restored", "cookies", len(session.Cookies), "saved_at", session.SavedAt)
	return true, nil
}

// Plan restores the session, logs in when needed and freezes the order
// template. Failures are recorded as aborted runs.
func (e *Engine) Plan(ctx context.Context, req RunRequest) (RunPlan, error) {
	plan := RunPlan{
		ID:        uuid.NewString(),
		Item:      req.Item,
		Workers:   req.Workers,
		Target:    e.deps.Scheduler.ComputeTarget(),
		StartedAt: e.deps.Clock.Now(),
	}

	err := e.prepare(ctx, req, &plan)
	if err != nil {
		e.record(ctx, plan, nil, domain.RunStatusAborted, err)
		return RunPlan{}, err
	}

	e.logger.Info("run planned", "run", plan.ID, "workers", plan.Workers, "target", plan.Target.At)
	return plan, nil
}

func (e *Engine) prepare(ctx context.Context, req RunRequest, plan *RunPlan) error {
	if req.Workers <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", req.Workers)
	}
	if _, err := e.RestoreSession(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if err := e.deps.Auth.Ensure(ctx); err != nil {
		return err
	}

	template, err := e.deps.Resolver.Resolve(ctx, req.Item, req.Buyer)
	if err != nil {
		return err
	}
	plan.Template = template
	return nil
}

// Await blocks until the plan's target instant has passed.
func (e *Engine) Await(ctx context.Context, plan RunPlan) error {
	return e.deps.Scheduler.AwaitTarget(ctx, plan.Target)
}

// Execute fans out the workers of a plan and records the run once they all
// return. Cancelling ctx is the graceful stop.
func (e *Engine) Execute(ctx context.Context, plan RunPlan) (domain.RunRecord, error) {
	if err := e.deps.Auth.Ensure(ctx); err != nil {
		return e.record(ctx, plan, nil, domain.RunStatusAborted, err), err
	}

	results := e.deps.Scheduler.FanOut(ctx, plan.Workers, func(ctx context.Context, id int) domain.WorkerResult {
		worker := NewWorker(id, plan.ID, e.deps.Acquisition, plan.Template, e.deps.Recorder, e.deps.Clock, e.logger.With("run", plan.ID), e.worker)
		return worker.Run(ctx)
	})

	status := domain.RunStatusStopped
	for _, r := range results {
		if r.Acquired {
			status = domain.RunStatusAcquired
			break
		}
	}

	record := e.record(ctx, plan, results, status, nil)
	e.logger.Info("run finished", "run", plan.ID, "status", status, "attempts", record.Attempts)
	return record, nil
}

func (e *Engine) record(ctx context.Context, plan RunPlan, results []domain.WorkerResult, status domain.RunStatus, runErr error) domain.RunRecord {
	record := domain.RunRecord{
		ID:         plan.ID,
		Item:       plan.Item,
		Workers:    plan.Workers,
		Target:     plan.Target.At,
		StartedAt:  plan.StartedAt,
		FinishedAt: e.deps.Clock.Now(),
		Status:     status,
	}
	for _, r := range results {
		record.Attempts += r.Iterations
		if r.PurchaseURL != "" {
			record.PurchaseURLs = append(record.PurchaseURLs, r.PurchaseURL)
		}
	}
	if runErr != nil {
		record.Error = runErr.Error()
	}

	if e.deps.Runs == nil {
		return record
	}
	// The history entry is written even when the run was interrupted.
	if err := e.deps.Runs.Save(context.WithoutCancel(ctx), record); err != nil {
		e.logger.Warn("save run history failed", "run", record.ID, "error", err)
	}
	return record
}
