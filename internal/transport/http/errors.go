package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

type badRequestError struct {
	err error
}

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return badRequestError{err: err}
}

// writeError maps service errors to responses. Anything unrecognised is a store
// failure and its message is returned as is.
func writeError(c echo.Context, err error) error {
	var br badRequestError
	switch {
	case errors.As(err, &br):
		return c.JSON(http.StatusBadRequest, util.Error(br.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, util.Error("Unauthorized"))
	case errors.Is(err, service.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, util.Error("Invalid token"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.Error("Forbidden"))
	case errors.Is(err, service.ErrProfileLookup):
		return c.JSON(http.StatusInternalServerError, util.Error("Failed to verify requester profile"))
	case errors.Is(err, service.ErrTransactionIDRequired), errors.Is(err, service.ErrInvalidAction):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrAlreadyRefunded):
		return c.JSON(http.StatusBadRequest, util.Error("Transaction already refunded"))
	case errors.Is(err, service.ErrTransactionNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Transaction not found"))
	case errors.Is(err, service.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Booking not found"))
	case errors.Is(err, service.ErrBookingNotUpcoming):
		return c.JSON(http.StatusConflict, util.Error("Only upcoming bookings can be cancelled"))
	case errors.Is(err, service.ErrProfileNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Profile not found"))
	case errors.Is(err, service.ErrSelfDemotion):
		return c.JSON(http.StatusConflict, util.Error("Admins cannot remove their own admin role"))
	case errors.Is(err, service.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Destination not found"))
	case errors.Is(err, service.ErrDestinationExists):
		return c.JSON(http.StatusConflict, util.Error("A destination with this name already exists"))
	case errors.Is(err, service.ErrDestinationValidation),
		errors.Is(err, service.ErrImageRequired),
		errors.Is(err, service.ErrImageTooLarge),
		errors.Is(err, service.ErrImageUnsupportedType):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrReviewValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrReviewNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Review not found"))
	case errors.Is(err, service.ErrStorageDisabled):
		return c.JSON(http.StatusServiceUnavailable, util.Error("Image uploads are not configured"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
	}
}

// newHTTPErrorHandler renders framework errors (404, 405, panics) with the same
// {"error": "..."} body the handlers use.
func newHTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
			switch code {
			case http.StatusMethodNotAllowed:
				message = "Method not allowed"
			case http.StatusNotFound:
				message = "Not found"
			}
		}
		if code >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, util.Error(message))
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("write error response")
		}
	}
}
