package http

import "github.com/yash-2200030856/Sanchari-escapes/internal/domain"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"Forbidden"`
}

// SuccessResponse denotes a simple success flag.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// RefundResponse is returned by the process-refund endpoint.
type RefundResponse struct {
	Success bool                `json:"success" example:"true"`
	Refund  *domain.Transaction `json:"refund"`
}

// TransactionListResponse wraps the admin and personal transaction listings.
type TransactionListResponse struct {
	Data []domain.TransactionDetail `json:"data"`
}

type updateTransactionRequest struct {
	TransactionID string `json:"transaction_id"`
	Action        string `json:"action"`
}

type processRefundRequest struct {
	TransactionID string   `json:"transaction_id"`
	BookingID     string   `json:"booking_id"`
	UserID        string   `json:"user_id"`
	Amount        *float64 `json:"amount"`
}

// CancelBookingResponse is returned after a traveller cancels a booking.
type CancelBookingResponse struct {
	Booking         *domain.Booking `json:"booking"`
	RefundRequested bool            `json:"refund_requested" example:"true"`
}

// PageMeta describes pagination for list endpoints.
type PageMeta struct {
	Limit  int `json:"limit" example:"20"`
	Offset int `json:"offset" example:"0"`
	Count  int `json:"count" example:"2"`
}
