package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultPollAttempts = 36
)

type AuthOptions struct {
	PollInterval time.Duration
	PollAttempts int
	Logger       *slog.Logger
}

// Authenticator keeps the shared transport logged in. Only one login flow
// runs per process; callers queued behind it re-check validity first.
type Authenticator struct {
	endpoints ports.AuthEndpoints
	transport ports.SessionTransport
	sessions  *SessionStore
	presenter ports.ChallengePresenter
	logger    *slog.Logger

	pollInterval time.Duration
	pollAttempts int
	sleep        func(ctx context.Context, d time.Duration) error

	mu sync.Mutex
}

func NewAuthenticator(endpoints ports.AuthEndpoints, transport ports.SessionTransport, sessions *SessionStore, presenter ports.ChallengePresenter, opts AuthOptions) *Authenticator {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	attempts := opts.PollAttempts
	if attempts <= 0 {
		attempts = DefaultPollAttempts
	}

	return &Authenticator{
		endpoints:    endpoints,
		transport:    transport,
		sessions:     sessions,
		presenter:    presenter,
		logger:       loggerOrDiscard(opts.Logger),
		pollInterval: interval,
		pollAttempts: attempts,
		sleep:        sleepContext,
	}
}

// IsValid probes an authenticated page. Transport failures count as invalid.
func (a *Authenticator) IsValid(ctx context.Context) bool {
	valid, err := a.endpoints.ProbeSession(ctx)
	if err != nil {
		a.logger.Warn("session probe failed", "error", err)
		return false
	}
	a.logger.Debug("session probed", "valid", valid)
	return valid
}

// Ensure logs in only when the current session is not accepted.
func (a *Authenticator) Ensure(ctx context.Context) error {
	if a.IsValid(ctx) {
		return nil
	}
	return a.Login(ctx)
}

func (a *Authenticator) Login(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.IsValid(ctx) {
		a.logger.Info("session already valid")
		return nil
	}

	challenge, err := a.endpoints.IssueChallenge(ctx)
	if err != nil {
		return domain.Fatal(domain.StageAuthenticate, fmt.Errorf("%w: %w", domain.ErrChallengeUnavailable, err))
	}
	if err := a.presenter.Present(ctx, challenge); err != nil {
		return domain.Fatal(domain.StageAuthenticate, fmt.Errorf("%w: present: %w", domain.ErrChallengeUnavailable, err))
	}
	a.logger.Info("waiting for challenge confirmation", "interval", a.pollInterval, "attempts", a.pollAttempts)

	ticket, err := a.awaitTicket(ctx)
	if err != nil {
		return err
	}

	if err := a.endpoints.ValidateTicket(ctx, ticket); err != nil {
		if !errors.Is(err, domain.ErrTicketRejected) {
			err = fmt.Errorf("%w: %w", domain.ErrTicketRejected, err)
		}
		return domain.Fatal(domain.StageAuthenticate, err)
	}
	a.logger.Info("login confirmed")

	if err := a.sessions.Save(ctx, a.transport.ExportSession()); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	return nil
}

func (a *Authenticator) awaitTicket(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= a.pollAttempts; attempt++ {
		poll, err := a.endpoints.PollChallenge(ctx)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			a.logger.Warn("challenge poll failed", "attempt", attempt, "error", err)
		case poll.Status == domain.ChallengeConfirmed:
			return poll.Ticket, nil
		case poll.Status == domain.ChallengeFailed:
			return "", domain.Fatal(domain.StageAuthenticate,
				fmt.Errorf("%w: code %d: %s", domain.ErrChallengeRejected, poll.Code, poll.Message))
		default:
			a.logger.Debug("challenge pending", "attempt", attempt, "code", poll.Code, "message", poll.Message)
		}

		if attempt == a.pollAttempts {
			break
		}
		if err := a.sleep(ctx, a.pollInterval); err != nil {
			return "", err
		}
	}

	return "", domain.Fatal(domain.StageAuthenticate, domain.ErrChallengeTimeout)
}

// Authenticated runs op after making sure the session is logged in.
func Authenticated[T any](ctx context.Context, auth *Authenticator, op func(ctx context.Context) (T, error)) (T, error) {
	if err := auth.Ensure(ctx); err != nil {
		var zero T
		return zero, err
	}
	return op(ctx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
