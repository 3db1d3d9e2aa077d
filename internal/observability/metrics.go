package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Total number of orders cancelled",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed checkout attempts",
	}, []string{"reason"})

	StockReservationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_reservations_failed_total",
		Help: "Total number of failed stock reservations",
	}, []string{"reason"})

	StockIntegrityAlarms = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_integrity_alarms_total",
		Help: "Occurrences of observed negative stock; should stay at zero",
	})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_latency_seconds",
		Help:    "Latency of cart checkout including reservation",
		Buckets: prometheus.DefBuckets,
	})

	StatsCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stats_cache_requests_total",
		Help: "Seller statistics cache lookups by outcome",
	}, []string{"outcome"})
)
