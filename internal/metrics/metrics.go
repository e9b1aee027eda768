package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sanchari"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	transactionUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_transaction_updates_total",
			Help:      "Admin approve/reject actions.",
		},
		[]string{"action"},
	)

	refunds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_total",
			Help:      "Refund attempts by outcome.",
		},
		[]string{"outcome"},
	)

	refundBookingFlagFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refund_booking_flag_failures_total",
			Help:      "Refunds whose booking refund_processed flag could not be set.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, transactionUpdates, refunds, refundBookingFlagFailures)
	})
}

func ObserveHTTP(method, route string, status int) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func IncTransactionUpdate(action string) {
	transactionUpdates.WithLabelValues(action).Inc()
}

func IncRefund(outcome string) {
	refunds.WithLabelValues(outcome).Inc()
}

func IncRefundBookingFlagFailure() {
	refundBookingFlagFailures.Inc()
}
