package trips

import (
	"math"
	"strings"

	"github.com/gdg-garage/safari-trip-api/internal/models"
)

// Validate checks an offer against the domain constraints. Checks run in a
// fixed order and the first failure is returned as a *models.ValidationError.
func Validate(o Offer) error {
	if o.StartDate.IsZero() {
		return models.Invalid("start_date", "a date for the trip is required")
	}
	if !o.CarType.Valid() {
		return models.Invalid("car_type", "invalid car type %q, allowed: %s", o.CarType, joinCarTypes())
	}
	if len(o.Itinerary) == 0 {
		return models.Invalid("itinerary", "must be a non-empty list of destinations")
	}
	for _, dest := range o.Itinerary {
		if !dest.Valid() {
			return models.Invalid("itinerary", "invalid destination %q, allowed: %s", dest, joinDestinations())
		}
	}
	if o.AvailableSeats < models.MinSeats || o.AvailableSeats > models.MaxSeats {
		return models.Invalid("available_seats", "must be an integer between %d and %d", models.MinSeats, models.MaxSeats)
	}
	if math.IsNaN(o.PricePerPerson) || o.PricePerPerson < models.MinPrice || o.PricePerPerson > models.MaxPrice {
		return models.Invalid("price_per_person", "must be a number between %g and %g", models.MinPrice, models.MaxPrice)
	}
	if !o.CarState.Valid() {
		return models.Invalid("car_state", "invalid car state %q, allowed: slightly used, moderately used, heavily used", o.CarState)
	}
	if o.Days < 1 {
		return models.Invalid("days", "must be a positive integer")
	}
	return nil
}

func joinCarTypes() string {
	names := make([]string, len(models.CarTypes))
	for i, c := range models.CarTypes {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func joinDestinations() string {
	names := make([]string, len(models.Destinations))
	for i, d := range models.Destinations {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
