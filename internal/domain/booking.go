package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	UserID          uuid.UUID     `db:"user_id" json:"user_id"`
	TripID          uuid.UUID     `db:"trip_id" json:"trip_id"`
	StartDate       time.Time     `db:"start_date" json:"start_date"`
	EndDate         time.Time     `db:"end_date" json:"end_date"`
	TravelersCount  int           `db:"travelers_count" json:"travelers_count"`
	TotalAmount     float64       `db:"total_amount" json:"total_amount"`
	Status          BookingStatus `db:"status" json:"status"`
	RefundRequested bool          `db:"refund_requested" json:"refund_requested"`
	RefundProcessed bool          `db:"refund_processed" json:"refund_processed"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`

	Destination *Destination `db:"-" json:"destinations,omitempty"`
}
