package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

const bookingColumns = `id, user_id, trip_id, start_date, end_date, travelers_count, total_amount, status,
        refund_requested, refund_processed, created_at, updated_at`

type BookingRepository struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

var _ ports.BookingRepository = (*BookingRepository)(nil)

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db, q: db}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context, bookings ports.BookingRepository, transactions ports.TransactionRepository) error) error {
	if _, nested := r.q.(*sqlx.Tx); nested {
		return fn(ctx, r, &TransactionRepository{db: r.db, q: r.q})
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	bookings := &BookingRepository{db: r.db, q: tx}
	transactions := &TransactionRepository{db: r.db, q: tx}
	if err := fn(ctx, bookings, transactions); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var booking domain.Booking
	if err := sqlx.GetContext(ctx, r.q, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Booking, error) {
	items := []domain.Booking{}
	if len(ids) == 0 {
		return items, nil
	}
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ANY($1)`
	if err := sqlx.SelectContext(ctx, r.q, &items, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const query = `
        UPDATE bookings
        SET status = $2,
            updated_at = NOW()
        WHERE id = $1 AND status = $3
        RETURNING ` + bookingColumns

	row := r.q.QueryRowxContext(ctx, query, id, domain.BookingStatusCancelled, domain.BookingStatusUpcoming)
	var booking domain.Booking
	if err := row.StructScan(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) MarkRefundRequested(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE bookings
        SET refund_requested = TRUE,
            updated_at = NOW()
        WHERE id = $1
    `
	res, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}

func (r *BookingRepository) MarkRefundProcessed(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE bookings
        SET refund_processed = TRUE,
            updated_at = NOW()
        WHERE id = $1
    `
	res, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
