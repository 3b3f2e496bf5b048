package ports

import (
	"context"

	"github.com/bnema/seckill-cli/internal/domain"
)

// AuthEndpoints is the remote surface of the scan-to-login flow.
type AuthEndpoints interface {
	// ProbeSession reports whether the current transport credentials are
	// accepted by an authenticated page without a redirect.
	ProbeSession(ctx context.Context) (bool, error)
	IssueChallenge(ctx context.Context) (domain.Challenge, error)
	PollChallenge(ctx context.Context) (domain.ChallengePoll, error)
	ValidateTicket(ctx context.Context, ticket string) error
}

type OrderEndpoints interface {
	// Reserve books the pre-sale appointment for an item and returns the
	// remote's human readable result.
	Reserve(ctx context.Context, sku domain.SKU) (string, error)
	FetchOrderContext(ctx context.Context, item domain.Item) (domain.OrderContext, error)
}

// AcquisitionEndpoints are the calls a worker makes on every iteration.
type AcquisitionEndpoints interface {
	// ResolvePurchaseURL returns domain.ErrPurchaseURLUnavailable while the
	// inventory gate is still closed.
	ResolvePurchaseURL(ctx context.Context, sku domain.SKU) (string, error)
	Warmup(ctx context.Context, purchaseURL string, sku domain.SKU) error
	Checkout(ctx context.Context, item domain.Item) error
	Submit(ctx context.Context, template domain.OrderTemplate) (domain.Outcome, error)
}

// SessionTransport moves credentials between the persisted session and the
// live transport.
type SessionTransport interface {
	ExportSession() domain.Session
	ImportSession(session domain.Session)
}
