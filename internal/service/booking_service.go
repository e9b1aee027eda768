package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

type BookingService struct {
	bookings ports.BookingRepository
}

func NewBookingService(bookings ports.BookingRepository) *BookingService {
	return &BookingService{bookings: bookings}
}

// Cancel cancels an upcoming booking owned by userID. Pending payments are cancelled and
// settled payments made with a refundable method are queued for an admin refund.
// All writes share one database transaction. The boolean result reports whether a refund
// was requested.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*domain.Booking, bool, error) {
	var (
		cancelled       *domain.Booking
		refundRequested bool
	)
	err := s.bookings.WithTx(ctx, func(ctx context.Context, bookings ports.BookingRepository, transactions ports.TransactionRepository) error {
		booking, err := bookings.FindByID(ctx, bookingID)
		if err != nil {
			if isNotFound(err) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.UserID != userID {
			return ErrBookingNotFound
		}
		if booking.Status != domain.BookingStatusUpcoming {
			return ErrBookingNotUpcoming
		}

		cancelled, err = bookings.Cancel(ctx, bookingID)
		if err != nil {
			if isNotFound(err) {
				return ErrBookingNotUpcoming
			}
			return err
		}

		payments, err := transactions.ListByBooking(ctx, bookingID)
		if err != nil {
			return err
		}

		refundRequested = false
		for _, payment := range payments {
			if payment.IsRefund() {
				continue
			}
			switch {
			case payment.Status == domain.TransactionStatusPending:
				if err := transactions.UpdateStatus(ctx, payment.ID, domain.TransactionStatusCancelled); err != nil {
					return err
				}
			case payment.Status == domain.TransactionStatusCompleted &&
				payment.HasRefundableMethod() &&
				payment.RefundStatus == domain.RefundStatusNone:
				if err := transactions.UpdateRefundStatus(ctx, payment.ID, domain.RefundStatusPending); err != nil {
					return err
				}
				refundRequested = true
			}
		}

		if refundRequested {
			if err := bookings.MarkRefundRequested(ctx, bookingID); err != nil {
				return err
			}
			cancelled.RefundRequested = true
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return cancelled, refundRequested, nil
}
