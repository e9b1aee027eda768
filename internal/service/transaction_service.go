package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/metrics"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

type TransactionServiceConfig struct {
	Logger   *zerolog.Logger
	Notifier ports.RefundNotifier
}

type TransactionService struct {
	transactions ports.TransactionRepository
	bookings     ports.BookingRepository
	profiles     ports.ProfileRepository
	destinations ports.DestinationRepository
	notifier     ports.RefundNotifier
	logger       zerolog.Logger
}

func NewTransactionService(transactions ports.TransactionRepository, bookings ports.BookingRepository, profiles ports.ProfileRepository, destinations ports.DestinationRepository, cfg TransactionServiceConfig) *TransactionService {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "transactions").Logger()
	}
	return &TransactionService{
		transactions: transactions,
		bookings:     bookings,
		profiles:     profiles,
		destinations: destinations,
		notifier:     cfg.Notifier,
		logger:       logger,
	}
}

// ListAll returns every transaction, refund legs included, newest first.
func (s *TransactionService) ListAll(ctx context.Context) ([]domain.TransactionDetail, error) {
	items, err := s.transactions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachDetails(ctx, items, false)
}

// ListForUser returns the caller's history without refund legs.
func (s *TransactionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.TransactionDetail, error) {
	items, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Transaction, 0, len(items))
	for _, item := range items {
		if item.IsRefund() {
			continue
		}
		visible = append(visible, item)
	}
	return s.attachDetails(ctx, visible, true)
}

func (s *TransactionService) UpdateStatus(ctx context.Context, id uuid.UUID, action domain.TransactionAction) error {
	if id == uuid.Nil {
		return ErrTransactionIDRequired
	}
	status, ok := action.TargetStatus()
	if !ok {
		return ErrInvalidAction
	}
	if err := s.transactions.UpdateStatus(ctx, id, status); err != nil {
		if isNotFound(err) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}

// ProcessRefund marks the original transaction refunded and appends the refund row in one
// database transaction, then flags the booking. The booking flag is best effort.
func (s *TransactionService) ProcessRefund(ctx context.Context, req domain.RefundRequest) (*domain.Transaction, error) {
	if req.TransactionID == uuid.Nil {
		return nil, ErrTransactionIDRequired
	}

	var (
		refund    *domain.Transaction
		recipient = req.UserID
	)
	err := s.transactions.WithTx(ctx, func(ctx context.Context, repo ports.TransactionRepository) error {
		original, err := repo.LockByID(ctx, req.TransactionID)
		if err != nil {
			if isNotFound(err) {
				return ErrTransactionNotFound
			}
			return err
		}
		if original.AlreadyRefunded() {
			return ErrAlreadyRefunded
		}
		if recipient == nil {
			// email the payer when the caller did not name a user
			recipient = original.UserID
		}

		if err := repo.MarkRefunded(ctx, original.ID); err != nil {
			return err
		}

		created, err := repo.Create(ctx, domain.Transaction{
			UserID:        req.UserID,
			BookingID:     req.BookingID,
			Amount:        refundAmount(req.Amount, original.Amount),
			PaymentMethod: domain.PaymentMethodRefund,
			Status:        domain.TransactionStatusCompleted,
			RefundStatus:  domain.RefundStatusNone,
		})
		if err != nil {
			return err
		}
		refund = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.BookingID != nil {
		if err := s.bookings.MarkRefundProcessed(ctx, *req.BookingID); err != nil {
			metrics.IncRefundBookingFlagFailure()
			s.logger.Warn().Err(err).
				Str("transaction_id", req.TransactionID.String()).
				Str("booking_id", req.BookingID.String()).
				Msg("refund processed but booking flag update failed")
		}
	}

	s.notifyRefund(ctx, recipient, *refund)
	return refund, nil
}

func (s *TransactionService) notifyRefund(ctx context.Context, userID *uuid.UUID, refund domain.Transaction) {
	if s.notifier == nil || userID == nil {
		return
	}
	profile, err := s.profiles.FindByID(ctx, *userID)
	if err != nil || profile == nil || profile.Email == "" {
		s.logger.Debug().Err(err).Str("user_id", userID.String()).Msg("skip refund email: no profile email")
		return
	}
	if err := s.notifier.SendRefundProcessed(ctx, profile.Email, refund); err != nil {
		s.logger.Warn().Err(err).Str("refund_id", refund.ID.String()).Msg("refund email failed")
	}
}

func (s *TransactionService) attachDetails(ctx context.Context, items []domain.Transaction, withDestinations bool) ([]domain.TransactionDetail, error) {
	details := make([]domain.TransactionDetail, 0, len(items))
	if len(items) == 0 {
		return details, nil
	}

	bookingIDs := make([]uuid.UUID, 0, len(items))
	userIDs := make([]uuid.UUID, 0, len(items))
	seenBookings := make(map[uuid.UUID]struct{}, len(items))
	seenUsers := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.BookingID != nil {
			if _, ok := seenBookings[*item.BookingID]; !ok {
				seenBookings[*item.BookingID] = struct{}{}
				bookingIDs = append(bookingIDs, *item.BookingID)
			}
		}
		if item.UserID != nil {
			if _, ok := seenUsers[*item.UserID]; !ok {
				seenUsers[*item.UserID] = struct{}{}
				userIDs = append(userIDs, *item.UserID)
			}
		}
	}

	bookings, err := s.bookings.FindByIDs(ctx, bookingIDs)
	if err != nil {
		return nil, err
	}
	bookingByID := make(map[uuid.UUID]*domain.Booking, len(bookings))
	for i := range bookings {
		bookingByID[bookings[i].ID] = &bookings[i]
	}

	if withDestinations && len(bookings) > 0 {
		tripIDs := make([]uuid.UUID, 0, len(bookings))
		for _, b := range bookings {
			tripIDs = append(tripIDs, b.TripID)
		}
		destinations, err := s.destinations.FindByIDs(ctx, tripIDs)
		if err != nil {
			return nil, err
		}
		destByID := make(map[uuid.UUID]*domain.Destination, len(destinations))
		for i := range destinations {
			destByID[destinations[i].ID] = &destinations[i]
		}
		for _, b := range bookingByID {
			b.Destination = destByID[b.TripID]
		}
	}

	profiles, err := s.profiles.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	profileByID := make(map[uuid.UUID]*domain.Profile, len(profiles))
	for i := range profiles {
		profileByID[profiles[i].ID] = &profiles[i]
	}

	for _, item := range items {
		detail := domain.TransactionDetail{Transaction: item}
		if item.BookingID != nil {
			detail.Booking = bookingByID[*item.BookingID]
		}
		if item.UserID != nil {
			detail.Profile = profileByID[*item.UserID]
		}
		details = append(details, detail)
	}
	return details, nil
}

// refundAmount stores refunds as a negative magnitude whatever sign the caller sent.
// Without an explicit amount the full original amount is refunded.
func refundAmount(requested *float64, original float64) float64 {
	magnitude := math.Abs(original)
	if requested != nil {
		magnitude = math.Abs(*requested)
	}
	if magnitude == 0 {
		return 0
	}
	return -magnitude
}
