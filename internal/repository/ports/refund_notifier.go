package ports

import (
	"context"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
)

type RefundNotifier interface {
	SendRefundProcessed(ctx context.Context, email string, refund domain.Transaction) error
}
