package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		ordersCreatedTotal,
		confirmationsTotal,
		paymentsRevenueTotal,
	)
}

var (
	ordersCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Gateway orders created, by role.",
		},
		[]string{"role"},
	)

	confirmationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_confirmations_total",
			Help: "Payment confirmation attempts by outcome (successful/failed).",
		},
		[]string{"status"},
	)

	paymentsRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_revenue_paise_total",
			Help: "The total monetary value of successful payments, labeled by currency.",
		},
		[]string{"currency"},
	)
)

func IncOrderCreated(role string) {
	ordersCreatedTotal.WithLabelValues(norm(role)).Inc()
}

func IncConfirmation(status string) {
	confirmationsTotal.WithLabelValues(norm(status)).Inc()
}

func AddPaymentRevenue(currency string, amountPaise int64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(float64(amountPaise))
}
