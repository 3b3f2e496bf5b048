package ports

import (
	"context"

	"github.com/bnema/seckill-cli/internal/domain"
)

type RunRepository interface {
	GetByID(ctx context.Context, id string) (domain.RunRecord, error)
	List(ctx context.Context) ([]domain.RunRecord, error)
	Save(ctx context.Context, run domain.RunRecord) error
}
