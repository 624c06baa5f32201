// Package metrics exposes Prometheus collectors for the HTTP surface and the ordering flow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "coffee_kart"

var (
	// httpRequests counts handled requests.
	// Labels: method, route (chi pattern), status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	cartItemsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "items_added_total",
		Help:      "Total line items added to carts",
	})

	// cartSnapshots counts realtime snapshot publishes.
	// Labels: result (ok, error)
	cartSnapshots = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "snapshots_published_total",
		Help:      "Cart snapshots published to subscribers",
	}, []string{"result"})

	ordersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "placed_total",
		Help:      "Orders placed by payment method",
	}, []string{"payment_method"})

	orderRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "revenue_total",
		Help:      "Sum of order totals in the smallest currency unit",
	})

	// orderTransitions counts status changes after placement.
	// Labels: from, to
	orderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "status_transitions_total",
		Help:      "Order status transitions",
	}, []string{"from", "to"})
)

// RecordCartItemAdded counts one added cart line.
func RecordCartItemAdded() { cartItemsAdded.Inc() }

// RecordSnapshotPublished counts a cart snapshot publish attempt.
func RecordSnapshotPublished(err error) {
	if err != nil {
		cartSnapshots.WithLabelValues("error").Inc()
		return
	}
	cartSnapshots.WithLabelValues("ok").Inc()
}

// RecordOrderPlaced counts a new order and adds its total to revenue.
func RecordOrderPlaced(paymentMethod string, total int64) {
	ordersPlaced.WithLabelValues(paymentMethod).Inc()
	orderRevenue.Add(float64(total))
}

// RecordStatusTransition counts an order status change.
func RecordStatusTransition(from, to string) {
	orderTransitions.WithLabelValues(from, to).Inc()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency per chi route pattern.
// Unmatched requests are grouped under "unmatched" to keep label cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
