package models

import (
	"time"
)

// Booking is a seat reservation against one trip. Bookings are never changed
// once appended to a trip.
type Booking struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	TripID       string    `json:"-" gorm:"index"`
	Confirmation string    `json:"confirmation,omitempty"`
	BookingUser  string    `json:"booking_user"`
	SeatsToBook  int       `json:"seats_to_book"`
	TotalCost    float64   `json:"total_cost"`
	BookedAt     time.Time `json:"bookedAt"`
}

// TotalCost is what a booking of seats on trip costs.
func TotalCost(trip Trip, seats int) float64 {
	return float64(trip.Days) * float64(seats) * trip.PricePerPerson
}
