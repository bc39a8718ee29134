package models

import (
	"time"
)

type CarType string

const (
	CarTypePopUpMinivan CarType = "pop-up roof minivan"
	CarTypePopUp4x4     CarType = "pop-up roof 4x4 vehicle"
	CarTypeOpenSided4x4 CarType = "open-sided 4x4 vehicle"
)

// CarTypes lists every vehicle type a trip may be offered with.
var CarTypes = []CarType{CarTypePopUpMinivan, CarTypePopUp4x4, CarTypeOpenSided4x4}

func (c CarType) Valid() bool {
	for _, t := range CarTypes {
		if c == t {
			return true
		}
	}
	return false
}

// CarState describes how worn the vehicle is. States are ordered, see Rank.
type CarState string

const (
	CarStateSlightlyUsed   CarState = "slightly used"
	CarStateModeratelyUsed CarState = "moderately used"
	CarStateHeavilyUsed    CarState = "heavily used"
)

var CarStates = []CarState{CarStateSlightlyUsed, CarStateModeratelyUsed, CarStateHeavilyUsed}

// Rank returns the wear rank of the state (1 = least worn). Unknown states rank 0.
func (c CarState) Rank() int {
	switch c {
	case CarStateSlightlyUsed:
		return 1
	case CarStateModeratelyUsed:
		return 2
	case CarStateHeavilyUsed:
		return 3
	}
	return 0
}

func (c CarState) Valid() bool {
	return c.Rank() > 0
}

type Destination string

// Destinations is the fixed set of places an itinerary may visit.
var Destinations = []Destination{
	"Arusha",
	"Tarangire",
	"Serengeti",
	"Ngorongoro",
	"Manyara",
	"Kilimanjaro",
	"Natron",
}

func (d Destination) Valid() bool {
	for _, known := range Destinations {
		if d == known {
			return true
		}
	}
	return false
}

const (
	MinSeats = 1
	MaxSeats = 7
	MinPrice = 1.0
	MaxPrice = 1000.0

	DefaultTitle = "Safari Trip"
	DefaultImage = "safari0.jpg"
)

type Trip struct {
	ID             string        `json:"id" gorm:"primaryKey"`
	Title          string        `json:"title"`
	Image          string        `json:"image"`
	StartDate      Day           `json:"start_date"`
	Days           int           `json:"days"`
	CarType        CarType       `json:"car_type"`
	CarState       CarState      `json:"car_state"`
	Itinerary      []Destination `json:"itinerary" gorm:"serializer:json"`
	AvailableSeats int           `json:"available_seats"`
	PricePerPerson float64       `json:"price_per_person"`
	OfferedBy      string        `json:"offered_by" gorm:"index"`
	CreatedAt      time.Time     `json:"created_at"`
	Bookings       []Booking     `json:"bookings" gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

// EndDate is the day the trip is over: start date plus its day count.
func (t Trip) EndDate() time.Time {
	return t.StartDate.AddDate(0, 0, t.Days)
}

// OriginalSeats is the seat capacity the trip was offered with.
func (t Trip) OriginalSeats() int {
	seats := t.AvailableSeats
	for _, b := range t.Bookings {
		seats += b.SeatsToBook
	}
	return seats
}

// Visits reports whether dest is part of the itinerary.
func (t Trip) Visits(dest Destination) bool {
	for _, d := range t.Itinerary {
		if d == dest {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with t.
func (t Trip) Clone() Trip {
	c := t
	c.Itinerary = append([]Destination(nil), t.Itinerary...)
	c.Bookings = append([]Booking(nil), t.Bookings...)
	return c
}
