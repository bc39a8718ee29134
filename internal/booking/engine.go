// Package booking reserves seats on trips.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gdg-garage/safari-trip-api/internal/catalog"
	"github.com/gdg-garage/safari-trip-api/internal/metrics"
	"github.com/gdg-garage/safari-trip-api/internal/models"
	"github.com/gdg-garage/safari-trip-api/internal/notifier"
	"github.com/google/uuid"
)

const SuccessMessage = "Booking successful, we will send you the confirmation per email"

// Receipt confirms a committed booking.
type Receipt struct {
	Message        string    `json:"message"`
	Confirmation   string    `json:"confirmation"`
	TripID         string    `json:"trip_id"`
	Seats          int       `json:"seats"`
	TotalCost      float64   `json:"total_cost"`
	RemainingSeats int       `json:"remaining_seats"`
	BookedAt       time.Time `json:"booked_at"`
}

type Engine struct {
	catalog  *catalog.Catalog
	notifier notifier.Notifier
	log      *slog.Logger

	now   func() time.Time
	newID func() string
}

func NewEngine(c *catalog.Catalog, n notifier.Notifier, logger *slog.Logger) *Engine {
	if n == nil {
		n = notifier.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:  c,
		notifier: n,
		log:      logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Book reserves seats on trip tripID for bookingUser.
//
// The catalog is reloaded inside a catalog update, so the checks always see
// the committed seat count. Errors: models.ErrValidation for seats < 1,
// models.ErrNotFound, models.ErrForbidden when the user offered the trip,
// models.ErrCapacityExceeded, and models.ErrCatalogUnavailable or
// models.ErrPersistence from the store. A receipt is returned only once
// the booking has been saved.
func (e *Engine) Book(ctx context.Context, tripID string, seats int, bookingUser string) (Receipt, error) {
	if seats < 1 {
		metrics.BookingsTotal.WithLabelValues("invalid").Inc()
		return Receipt{}, fmt.Errorf("booking.Engine.Book: %w", models.Invalid("seats", "must be a positive integer"))
	}

	var (
		booked  models.Trip
		booking models.Booking
	)
	err := e.catalog.Update(ctx, func(trips []models.Trip) ([]models.Trip, error) {
		idx := -1
		for i := range trips {
			if trips[i].ID == tripID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("trip %q: %w", tripID, models.ErrNotFound)
		}

		trip := &trips[idx]
		if trip.OfferedBy == bookingUser {
			return nil, fmt.Errorf("you cannot book your own trip: %w", models.ErrForbidden)
		}
		if seats > trip.AvailableSeats {
			return nil, fmt.Errorf("requested %d, %d left: %w", seats, trip.AvailableSeats, models.ErrCapacityExceeded)
		}

		booking = models.Booking{
			Confirmation: e.newID(),
			BookingUser:  bookingUser,
			SeatsToBook:  seats,
			TotalCost:    models.TotalCost(*trip, seats),
			BookedAt:     e.now().UTC(),
		}
		trip.AvailableSeats -= seats
		trip.Bookings = append(trip.Bookings, booking)
		booked = trip.Clone()
		return trips, nil
	})
	if err != nil {
		metrics.BookingsTotal.WithLabelValues(outcome(err)).Inc()
		return Receipt{}, fmt.Errorf("booking.Engine.Book: %w", err)
	}

	metrics.BookingsTotal.WithLabelValues("success").Inc()
	metrics.SeatsBooked.Add(float64(seats))
	e.log.InfoContext(ctx, "trip booked",
		"trip_id", tripID,
		"booking_user", bookingUser,
		"seats", seats,
		"total_cost", booking.TotalCost,
		"remaining_seats", booked.AvailableSeats,
	)

	if err := e.notifier.NotifyBooking(booked, booking); err != nil {
		metrics.NotificationFailures.Inc()
		e.log.WarnContext(ctx, "booking notification failed", "trip_id", tripID, "error", err)
	}

	return Receipt{
		Message:        SuccessMessage,
		Confirmation:   booking.Confirmation,
		TripID:         tripID,
		Seats:          seats,
		TotalCost:      booking.TotalCost,
		RemainingSeats: booked.AvailableSeats,
		BookedAt:       booking.BookedAt,
	}, nil
}

// ParseSeats coerces a seat count received as text.
func ParseSeats(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, models.Invalid("seats", "is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.Invalid("seats", "must be an integer, got %q", raw)
	}
	return n, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrForbidden):
		return "forbidden"
	case errors.Is(err, models.ErrCapacityExceeded):
		return "capacity_exceeded"
	}
	return "error"
}
