// Package trips validates trip offers, creates trips from them and searches
// the catalog.
package trips

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gdg-garage/safari-trip-api/internal/models"
)

// Offer is a trip proposal with typed fields. It is checked by Validate
// before a Trip is created from it.
type Offer struct {
	Title          string
	Image          string
	StartDate      time.Time
	Days           int
	CarType        models.CarType
	CarState       models.CarState
	Itinerary      []models.Destination
	AvailableSeats int
	PricePerPerson float64
}

// RawOffer holds offer fields exactly as they arrive over the wire.
type RawOffer struct {
	Title          string
	Image          string
	StartDate      string
	Days           string
	CarType        string
	CarState       string
	Itinerary      string // JSON array, e.g. ["Arusha","Serengeti"]
	AvailableSeats string
	PricePerPerson string
}

// ParseOffer coerces raw fields into an Offer. Blank fields are left at their
// zero value so Validate reports them; fields that are present but
// malformed fail here with a *models.ValidationError.
func ParseOffer(raw RawOffer) (Offer, error) {
	o := Offer{
		Title:    strings.TrimSpace(raw.Title),
		Image:    strings.TrimSpace(raw.Image),
		CarType:  models.CarType(strings.TrimSpace(raw.CarType)),
		CarState: models.CarState(strings.TrimSpace(raw.CarState)),
	}

	var err error
	if o.StartDate, err = ParseDate("start_date", raw.StartDate); err != nil {
		return Offer{}, err
	}

	if s := strings.TrimSpace(raw.Itinerary); s != "" {
		if err := json.Unmarshal([]byte(s), &o.Itinerary); err != nil {
			return Offer{}, models.Invalid("itinerary", "must be a JSON-encoded array of destinations")
		}
	}

	if o.AvailableSeats, err = parseInt("available_seats", raw.AvailableSeats); err != nil {
		return Offer{}, err
	}
	if o.Days, err = parseInt("days", raw.Days); err != nil {
		return Offer{}, err
	}
	if s := strings.TrimSpace(raw.PricePerPerson); s != "" {
		if o.PricePerPerson, err = strconv.ParseFloat(s, 64); err != nil {
			return Offer{}, models.Invalid("price_per_person", "must be a number, got %q", s)
		}
	}
	return o, nil
}

// ParseDate accepts 2006-01-02 or RFC 3339 and returns the calendar day at
// UTC midnight. A blank value returns the zero time.
func ParseDate(field, value string) (time.Time, error) {
	d, err := models.ParseDay(value)
	if err != nil {
		return time.Time{}, models.Invalid(field, "must be a date (YYYY-MM-DD), got %q", strings.TrimSpace(value))
	}
	return d.Time, nil
}

func parseInt(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, models.Invalid(field, "must be an integer, got %q", value)
	}
	return n, nil
}
