package ports

import (
	"context"

	"github.com/bnema/seckill-cli/internal/domain"
)

type ChallengePresenter interface {
	Present(ctx context.Context, challenge domain.Challenge) error
}
