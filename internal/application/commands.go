package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/seckill-cli/internal/domain"
)

type RunRequest struct {
	Item    domain.Item
	Buyer   domain.BuyerCredentials
	Workers int
}

// RunPlan is everything fixed before the gate opens.
type RunPlan struct {
	ID        string
	Item      domain.Item
	Workers   int
	Target    domain.ScheduledInstant
	Template  domain.OrderTemplate
	StartedAt time.Time
}

type ReserveRequest struct {
	Item  domain.Item
	Buyer domain.BuyerCredentials
}

type ReserveResult struct {
	Message  string
	Template domain.OrderTemplate
}

// Login restores the stored session and runs the challenge flow only when the
// remote rejects it.
func (e *Engine) Login(ctx context.Context) error {
	if _, err := e.RestoreSession(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	return e.deps.Auth.Ensure(ctx)
}

// Reserve books the pre-sale appointment, then resolves the order context once
// so the operator can check what a run would submit.
func (e *Engine) Reserve(ctx context.Context, req ReserveRequest) (ReserveResult, error) {
	if err := e.Login(ctx); err != nil {
		return ReserveResult{}, err
	}

	message, err := e.deps.Resolver.Reserve(ctx, req.Item.SKU)
	if err != nil {
		return ReserveResult{}, err
	}

	template, err := e.deps.Resolver.Resolve(ctx, req.Item, req.Buyer)
	if err != nil {
		return ReserveResult{Message: message}, err
	}

	return ReserveResult{Message: message, Template: template}, nil
}

func (e *Engine) ClearSession(ctx context.Context) error {
	return e.deps.Sessions.Clear(ctx)
}
