package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error)
	List(ctx context.Context, limit, offset int) ([]domain.Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.Profile, error)
}
