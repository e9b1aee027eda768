package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

type AccountHandler struct {
	transactions *service.TransactionService
	bookings     *service.BookingService
}

// RegisterAccount mounts the signed-in traveller's endpoints under /api/me.
func RegisterAccount(e *echo.Echo, auth *service.AuthService, transactions *service.TransactionService, bookings *service.BookingService) {
	handler := &AccountHandler{transactions: transactions, bookings: bookings}

	me := e.Group("/api/me", RequireAuth(auth))
	me.GET("/transactions", handler.listTransactions)
	me.POST("/bookings/:id/cancel", handler.cancelBooking)
}

func (h *AccountHandler) listTransactions(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return writeError(c, service.ErrUnauthorized)
	}
	items, err := h.transactions.ListForUser(c.Request().Context(), identity.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, TransactionListResponse{Data: items})
}

func (h *AccountHandler) cancelBooking(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return writeError(c, service.ErrUnauthorized)
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}

	booking, refundRequested, err := h.bookings.Cancel(c.Request().Context(), identity.ID, bookingID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CancelBookingResponse{Booking: booking, RefundRequested: refundRequested})
}
