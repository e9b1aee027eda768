package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

type RefundStatus string

const (
	RefundStatusNone      RefundStatus = "none"
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusProcessed RefundStatus = "processed"
	RefundStatusFailed    RefundStatus = "failed"
)

const PaymentMethodRefund = "refund"

// refundablePaymentMethods lists the methods a cancellation can request money back for.
var refundablePaymentMethods = map[string]struct{}{
	"card":         {},
	"credit_card":  {},
	"cash":         {},
	"card_payment": {},
}

type Transaction struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	UserID        *uuid.UUID        `db:"user_id" json:"user_id"`
	BookingID     *uuid.UUID        `db:"booking_id" json:"booking_id"`
	Amount        float64           `db:"amount" json:"amount"`
	PaymentMethod string            `db:"payment_method" json:"payment_method"`
	Status        TransactionStatus `db:"status" json:"status"`
	RefundStatus  RefundStatus      `db:"refund_status" json:"refund_status"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// IsRefund reports whether the row is a refund ledger entry.
func (t *Transaction) IsRefund() bool {
	return strings.EqualFold(t.PaymentMethod, PaymentMethodRefund)
}

// AlreadyRefunded reports whether a refund was already applied to the row.
func (t *Transaction) AlreadyRefunded() bool {
	return t.Status == TransactionStatusRefunded || t.RefundStatus == RefundStatusProcessed
}

func (t *Transaction) HasRefundableMethod() bool {
	_, ok := refundablePaymentMethods[strings.ToLower(strings.TrimSpace(t.PaymentMethod))]
	return ok
}

type TransactionAction string

const (
	TransactionActionApprove TransactionAction = "approve"
	TransactionActionReject  TransactionAction = "reject"
)

// TargetStatus maps an admin action to the status it sets.
func (a TransactionAction) TargetStatus() (TransactionStatus, bool) {
	switch a {
	case TransactionActionApprove:
		return TransactionStatusCompleted, true
	case TransactionActionReject:
		return TransactionStatusFailed, true
	default:
		return "", false
	}
}

// TransactionDetail is a transaction with its booking and owning profile attached.
type TransactionDetail struct {
	Transaction
	Booking *Booking `json:"bookings"`
	Profile *Profile `json:"profiles"`
}

type RefundRequest struct {
	TransactionID uuid.UUID
	BookingID     *uuid.UUID
	UserID        *uuid.UUID
	Amount        *float64
}
