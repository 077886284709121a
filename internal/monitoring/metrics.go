package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPlaced counts orders successfully committed to the ledger.
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cafeteria_orders_placed_total",
		Help: "Number of orders placed",
	})

	// OrderTotals observes the monetary total of each placed order.
	OrderTotals = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cafeteria_order_total_amount",
		Help:    "Distribution of order totals",
		Buckets: prometheus.ExponentialBuckets(10, 2, 8),
	})

	// StatusTransitions counts order status updates by target status.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cafeteria_order_status_transitions_total",
		Help: "Order status updates by new status",
	}, []string{"status"})

	// StoreOpDuration observes store operation latency by collection and
	// operation.
	StoreOpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cafeteria_store_op_duration_seconds",
		Help:    "Duration of store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "op"})

	// FeedSubscribers tracks currently connected order feed clients.
	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cafeteria_feed_subscribers",
		Help: "Connected order feed subscribers",
	})
)

// ObserveStoreOp records the duration of one store operation.
func ObserveStoreOp(collection, op string, start time.Time) {
	StoreOpDuration.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}
