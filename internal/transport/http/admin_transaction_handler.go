package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/metrics"
	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

type AdminTransactionHandler struct {
	transactions *service.TransactionService
}

// RegisterAdminTransactions mounts the transaction endpoints on the admin group.
func RegisterAdminTransactions(admin *echo.Group, transactions *service.TransactionService) {
	handler := &AdminTransactionHandler{transactions: transactions}

	admin.GET("/list-transactions", handler.listTransactions)
	admin.POST("/update-transaction", handler.updateTransaction)
	admin.POST("/process-refund", handler.processRefund)
}

func (h *AdminTransactionHandler) listTransactions(c echo.Context) error {
	items, err := h.transactions.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, TransactionListResponse{Data: items})
}

func (h *AdminTransactionHandler) updateTransaction(c echo.Context) error {
	var req updateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	id, err := parseTransactionID(req.TransactionID)
	if err != nil {
		return writeError(c, err)
	}
	action := domain.TransactionAction(req.Action)

	if err := h.transactions.UpdateStatus(c.Request().Context(), id, action); err != nil {
		return writeError(c, err)
	}
	metrics.IncTransactionUpdate(string(action))
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *AdminTransactionHandler) processRefund(c echo.Context) error {
	var req processRefundRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	id, err := parseTransactionID(req.TransactionID)
	if err != nil {
		return writeError(c, err)
	}
	bookingID, err := optionalUUID(req.BookingID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("booking_id must be a valid UUID"))
	}
	userID, err := optionalUUID(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("user_id must be a valid UUID"))
	}

	refund, err := h.transactions.ProcessRefund(c.Request().Context(), domain.RefundRequest{
		TransactionID: id,
		BookingID:     bookingID,
		UserID:        userID,
		Amount:        req.Amount,
	})
	if err != nil {
		metrics.IncRefund(refundOutcome(err))
		return writeError(c, err)
	}
	metrics.IncRefund("processed")
	return c.JSON(http.StatusOK, RefundResponse{Success: true, Refund: refund})
}

var errInvalidTransactionID = errors.New("transaction_id must be a valid UUID")

func parseTransactionID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, service.ErrTransactionIDRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, badRequest(errInvalidTransactionID)
	}
	return id, nil
}

func optionalUUID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func refundOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrAlreadyRefunded):
		return "already_refunded"
	case errors.Is(err, service.ErrTransactionNotFound):
		return "not_found"
	default:
		return "failed"
	}
}
