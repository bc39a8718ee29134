package trips

import (
	"time"

	"github.com/gdg-garage/safari-trip-api/internal/models"
	"github.com/google/uuid"
)

// Factory builds Trip records. The zero value uses the wall clock and
// random (v4) UUIDs.
type Factory struct {
	Now   func() time.Time
	NewID func() string
}

// Create builds a trip from a validated offer with the default Factory.
func Create(o Offer, offeredBy string) models.Trip {
	return Factory{}.Create(o, offeredBy)
}

// Create does not persist the trip; that is the caller's job.
func (f Factory) Create(o Offer, offeredBy string) models.Trip {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	newID := uuid.NewString
	if f.NewID != nil {
		newID = f.NewID
	}

	title := o.Title
	if title == "" {
		title = models.DefaultTitle
	}
	image := o.Image
	if image == "" {
		image = models.DefaultImage
	}

	return models.Trip{
		ID:             newID(),
		Title:          title,
		Image:          image,
		StartDate:      models.DayOf(o.StartDate),
		Days:           o.Days,
		CarType:        o.CarType,
		CarState:       o.CarState,
		Itinerary:      append([]models.Destination(nil), o.Itinerary...),
		AvailableSeats: o.AvailableSeats,
		PricePerPerson: o.PricePerPerson,
		OfferedBy:      offeredBy,
		CreatedAt:      now().UTC(),
		Bookings:       []models.Booking{},
	}
}
