package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
)

type TransactionRepository interface {
	// WithTx runs fn against a repository bound to a single database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo TransactionRepository) error) error

	Create(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	// LockByID reads the row and holds a row lock until the surrounding transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListAll(ctx context.Context) ([]domain.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransactionStatus) error
	UpdateRefundStatus(ctx context.Context, id uuid.UUID, status domain.RefundStatus) error
	MarkRefunded(ctx context.Context, id uuid.UUID) error
}
