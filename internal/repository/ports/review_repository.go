package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
)

type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID, filter domain.ReviewListFilter) ([]domain.Review, error)
	// AggregateByDestination counts every review of the destination regardless of filters.
	AggregateByDestination(ctx context.Context, destinationID uuid.UUID) (*domain.ReviewAggregate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
