package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
)

type BookingRepository interface {
	// WithTx runs fn with booking and transaction repositories bound to one database
	// transaction. The transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, bookings BookingRepository, transactions TransactionRepository) error) error

	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Booking, error)
	// Cancel moves an upcoming booking to cancelled. It returns sql.ErrNoRows when no upcoming booking matches.
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	MarkRefundRequested(ctx context.Context, id uuid.UUID) error
	MarkRefundProcessed(ctx context.Context, id uuid.UUID) error
}
