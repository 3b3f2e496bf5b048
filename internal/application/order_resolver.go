package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

// OrderResolver runs the once-per-run calls that happen before the gate
// opens. Every failure here aborts the run.
type OrderResolver struct {
	auth      *Authenticator
	endpoints ports.OrderEndpoints
	logger    *slog.Logger
}

func NewOrderResolver(auth *Authenticator, endpoints ports.OrderEndpoints, logger *slog.Logger) *OrderResolver {
	return &OrderResolver{auth: auth, endpoints: endpoints, logger: loggerOrDiscard(logger)}
}

func (r *OrderResolver) Resolve(ctx context.Context, item domain.Item, buyer domain.BuyerCredentials) (domain.OrderTemplate, error) {
	if err := item.Validate(); err != nil {
		return domain.OrderTemplate{}, domain.Fatal(domain.StageResolve, err)
	}
	if err := buyer.Validate(); err != nil {
		return domain.OrderTemplate{}, domain.Fatal(domain.StageResolve, err)
	}

	orderCtx, err := Authenticated(ctx, r.auth, func(ctx context.Context) (domain.OrderContext, error) {
		return r.endpoints.FetchOrderContext(ctx, item)
	})
	if err != nil {
		return domain.OrderTemplate{}, domain.Fatal(domain.StageResolve, fmt.Errorf("fetch order context: %w", err))
	}

	template, err := domain.NewOrderTemplate(item, buyer, orderCtx)
	if err != nil {
		return domain.OrderTemplate{}, domain.Fatal(domain.StageResolve, err)
	}

	r.logger.Info("order context resolved",
		"sku", item.SKU,
		"quantity", item.Quantity,
		"address_id", template.Address.ID,
		"mobile", template.MaskedMobile(),
		"invoice", template.WithInvoice,
	)
	return template, nil
}

// Reserve books the pre-sale appointment for the item.
func (r *OrderResolver) Reserve(ctx context.Context, sku domain.SKU) (string, error) {
	if sku == "" {
		return "", domain.Fatal(domain.StageReserve, fmt.Errorf("item sku is required"))
	}

	result, err := Authenticated(ctx, r.auth, func(ctx context.Context) (string, error) {
		return r.endpoints.Reserve(ctx, sku)
	})
	if err != nil {
		return "", domain.Fatal(domain.StageReserve, err)
	}

	r.logger.Info("reservation answered", "sku", sku, "result", result)
	return result, nil
}
