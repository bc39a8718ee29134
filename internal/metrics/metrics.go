package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BookingsTotal counts booking attempts by outcome:
	// success, invalid, not_found, forbidden, capacity_exceeded, error.
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safari",
		Subsystem: "booking",
		Name:      "attempts_total",
		Help:      "Booking attempts by outcome",
	}, []string{"outcome"})

	SeatsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "safari",
		Subsystem: "booking",
		Name:      "seats_total",
		Help:      "Seats reserved by successful bookings",
	})

	OffersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safari",
		Subsystem: "catalog",
		Name:      "offers_total",
		Help:      "Trip offers by outcome",
	}, []string{"outcome"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "safari",
		Subsystem: "notifier",
		Name:      "failures_total",
		Help:      "Notifications that could not be delivered",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
