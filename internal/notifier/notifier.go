package notifier

import (
	"errors"

	"github.com/gdg-garage/safari-trip-api/internal/models"
)

// Notifier announces committed catalog changes. Calls happen after the
// change is saved; a failing notifier never undoes it.
type Notifier interface {
	NotifyOffer(trip models.Trip) error
	NotifyBooking(trip models.Trip, booking models.Booking) error
}

// Nop discards every notification.
type Nop struct{}

func (Nop) NotifyOffer(models.Trip) error                  { return nil }
func (Nop) NotifyBooking(models.Trip, models.Booking) error { return nil }

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) NotifyOffer(trip models.Trip) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyOffer(trip); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyBooking(trip models.Trip, booking models.Booking) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyBooking(trip, booking); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
