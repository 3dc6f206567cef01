package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(bookingsCreated)
	IncBookingCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(bookingsCreated))

	beforeSeed := testutil.ToFloat64(seedRows.WithLabelValues("users"))
	AddSeedRows("users", 5)
	assert.Equal(t, beforeSeed+5, testutil.ToFloat64(seedRows.WithLabelValues("users")))

	beforeHit := testutil.ToFloat64(listingCache.WithLabelValues("hit"))
	IncListingCache(true)
	IncListingCache(false)
	assert.Equal(t, beforeHit+1, testutil.ToFloat64(listingCache.WithLabelValues("hit")))

	ObserveHTTPRequest("GET", "/api/v1/listings", "200")
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/listings", "200")))
}
