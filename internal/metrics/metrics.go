package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "alxtravel"

var (
	once sync.Once

	listingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_created_total",
			Help:      "Count of listings created through the API.",
		},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Count of bookings created through the API.",
		},
	)

	bookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Count of bookings cancelled by their guest.",
		},
	)

	reviewsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "Count of reviews created through the API.",
		},
	)

	seedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seed_rows_created_total",
			Help:      "Rows inserted by the seed command, by entity.",
		},
		[]string{"entity"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	listingCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_cache_lookups_total",
			Help:      "Listing cache lookups by result (hit, miss).",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			listingsCreated,
			bookingsCreated,
			bookingsCancelled,
			reviewsCreated,
			seedRows,
			httpRequests,
			listingCache,
		)
	})
}

func IncListingCreated() {
	listingsCreated.Inc()
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncBookingCancelled() {
	bookingsCancelled.Inc()
}

func IncReviewCreated() {
	reviewsCreated.Inc()
}

func AddSeedRows(entity string, n int) {
	seedRows.WithLabelValues(entity).Add(float64(n))
}

func ObserveHTTPRequest(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

func IncListingCache(hit bool) {
	if hit {
		listingCache.WithLabelValues("hit").Inc()
		return
	}
	listingCache.WithLabelValues("miss").Inc()
}
