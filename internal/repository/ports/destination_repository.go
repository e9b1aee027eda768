package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.DestinationFields) (*domain.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error)
	FindByName(ctx context.Context, name string) (*domain.Destination, error)
	List(ctx context.Context, limit, offset int) ([]domain.Destination, error)
}
