package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/seckill-cli/internal/domain"
)

type SessionStatus struct {
	Stored  bool
	Valid   bool
	Cookies int
	SavedAt time.Time
}

// SessionStatus reports what is stored and whether the remote still accepts
// it. It never starts a login.
func (e *Engine) SessionStatus(ctx context.Context) (SessionStatus, error) {
	found, err := e.RestoreSession(ctx)
	if err != nil {
		return SessionStatus{}, err
	}

	current := e.deps.Sessions.Current()
	return SessionStatus{
		Stored:  found,
		Valid:   e.deps.Auth.IsValid(ctx),
		Cookies: len(current.Cookies),
		SavedAt: current.SavedAt,
	}, nil
}

// History lists recorded runs, newest first.
func (e *Engine) History(ctx context.Context) ([]domain.RunRecord, error) {
	if e.deps.Runs == nil {
		return nil, nil
	}
	return e.deps.Runs.List(ctx)
}

// Run returns one recorded run by its full ID.
func (e *Engine) Run(ctx context.Context, id string) (domain.RunRecord, error) {
	if e.deps.Runs == nil {
		return domain.RunRecord{}, fmt.Errorf("run %q: %w", id, domain.ErrRunNotFound)
	}
	return e.deps.Runs.GetByID(ctx, id)
}
