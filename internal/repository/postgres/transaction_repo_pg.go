package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

const transactionColumns = `id, user_id, booking_id, amount, payment_method, status, refund_status, created_at, updated_at`

type TransactionRepository struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

var _ ports.TransactionRepository = (*TransactionRepository)(nil)

func NewTransactionRepo(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db, q: db}
}

func (r *TransactionRepository) WithTx(ctx context.Context, fn func(ctx context.Context, repo ports.TransactionRepository) error) error {
	if _, nested := r.q.(*sqlx.Tx); nested {
		return fn(ctx, r)
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(ctx, &TransactionRepository{db: r.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *TransactionRepository) Create(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	const query = `
        INSERT INTO transactions (user_id, booking_id, amount, payment_method, status, refund_status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + transactionColumns

	refundStatus := t.RefundStatus
	if refundStatus == "" {
		refundStatus = domain.RefundStatusNone
	}
	row := r.q.QueryRowxContext(ctx, query, t.UserID, t.BookingID, t.Amount, t.PaymentMethod, t.Status, refundStatus)
	var created domain.Transaction
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *TransactionRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	var t domain.Transaction
	if err := sqlx.GetContext(ctx, r.q, &t, query, id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`
	items := []domain.Transaction{}
	if err := sqlx.SelectContext(ctx, r.q, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`
	items := []domain.Transaction{}
	if err := sqlx.SelectContext(ctx, r.q, &items, query, userID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TransactionRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE booking_id = $1 ORDER BY created_at ASC`
	items := []domain.Transaction{}
	if err := sqlx.SelectContext(ctx, r.q, &items, query, bookingID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransactionStatus) error {
	const query = `
        UPDATE transactions
        SET status = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	res, err := r.q.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}

func (r *TransactionRepository) UpdateRefundStatus(ctx context.Context, id uuid.UUID, status domain.RefundStatus) error {
	const query = `
        UPDATE transactions
        SET refund_status = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	res, err := r.q.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}

func (r *TransactionRepository) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE transactions
        SET status = $2,
            refund_status = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	res, err := r.q.ExecContext(ctx, query, id, domain.TransactionStatusRefunded, domain.RefundStatusProcessed)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
