package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidToken        = errors.New("invalid token")
	ErrForbidden           = errors.New("forbidden")
	ErrProfileLookup       = errors.New("failed to verify requester profile")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyRefunded     = errors.New("transaction already refunded")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingNotUpcoming  = errors.New("only upcoming bookings can be cancelled")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrSelfDemotion        = errors.New("admins cannot remove their own admin role")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrDestinationExists   = errors.New("destination name already exists")

	ErrTransactionIDRequired = errors.New("transaction_id required")
	ErrInvalidAction         = errors.New("action must be approve or reject")
	ErrDestinationValidation = errors.New("destination validation failed")
	ErrImageRequired         = errors.New("image file required")
	ErrImageTooLarge         = errors.New("image exceeds maximum size")
	ErrImageUnsupportedType  = errors.New("unsupported image content type")
	ErrStorageDisabled       = errors.New("image storage is not configured")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
