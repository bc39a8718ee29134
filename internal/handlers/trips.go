package handlers

import (
	"context"
	"log/slog"

	"github.com/gdg-garage/safari-trip-api/internal/auth"
	"github.com/gdg-garage/safari-trip-api/internal/models"
	"github.com/gdg-garage/safari-trip-api/internal/trips"
)

type TripHandler struct {
	trips *trips.Service
	auth  *auth.AuthHandler
	log   *slog.Logger
}

func NewTripHandler(svc *trips.Service, authHandler *auth.AuthHandler, logger *slog.Logger) *TripHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TripHandler{trips: svc, auth: authHandler, log: logger}
}

// FilterParams are the query parameters shared by both search operations.
type FilterParams struct {
	StartDate string `query:"start_date" doc:"Earliest start date (YYYY-MM-DD)"`
	EndDate   string `query:"end_date" doc:"Latest end date (YYYY-MM-DD), start date plus days"`
	MinDays   string `query:"min_days" doc:"Minimum trip length in days"`
	MaxDays   string `query:"max_days" doc:"Maximum trip length in days"`
	MinPrice  string `query:"min_price" doc:"Minimum price per person and day"`
	MaxPrice  string `query:"max_price" doc:"Maximum price per person and day"`
	CarType   string `query:"car_type" doc:"Exact vehicle type"`
	CarState  string `query:"car_state" doc:"Worst acceptable vehicle state"`
}

func (p FilterParams) criteria(destinations ...string) trips.CriteriaInput {
	return trips.CriteriaInput{
		Destinations: destinations,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		MinDays:      p.MinDays,
		MaxDays:      p.MaxDays,
		MinPrice:     p.MinPrice,
		MaxPrice:     p.MaxPrice,
		CarType:      p.CarType,
		CarState:     p.CarState,
	}
}

type SearchInput struct {
	Destinations []string `query:"destinations" doc:"Trips visiting any of these destinations"`
	FilterParams
}

type SearchOutput struct {
	Body struct {
		Trips            []models.Trip `json:"trips"`
		Stats            trips.Stats   `json:"stats" doc:"Day and price range over the whole catalog"`
		CatalogAvailable bool          `json:"catalog_available"`
	}
}

func (h *TripHandler) HandleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	c, err := trips.ParseCriteria(input.criteria(input.Destinations...))
	if err != nil {
		return nil, httpError(h.log, err)
	}

	res := h.trips.Search(ctx, c)
	out := &SearchOutput{}
	out.Body.Trips = res.Trips
	out.Body.Stats = res.Stats
	out.Body.CatalogAvailable = res.CatalogAvailable
	return out, nil
}

type StrictSearchInput struct {
	Itinerary string `query:"itinerary" doc:"Comma-separated destinations, all of which must be visited"`
	FilterParams
}

type StrictSearchOutput struct {
	Body struct {
		Trips            []models.Trip `json:"trips"`
		CatalogAvailable bool          `json:"catalog_available"`
	}
}

func (h *TripHandler) HandleSearchStrict(ctx context.Context, input *StrictSearchInput) (*StrictSearchOutput, error) {
	c, err := trips.ParseCriteria(input.criteria(input.Itinerary))
	if err != nil {
		return nil, httpError(h.log, err)
	}

	found, ok := h.trips.SearchStrict(ctx, c)
	out := &StrictSearchOutput{}
	out.Body.Trips = found
	out.Body.CatalogAvailable = ok
	return out, nil
}

type TripIDInput struct {
	ID string `path:"id" doc:"Trip id"`
}

type TripOutput struct {
	Body models.Trip
}

func (h *TripHandler) HandleGet(ctx context.Context, input *TripIDInput) (*TripOutput, error) {
	trip, err := h.trips.Get(ctx, input.ID)
	if err != nil {
		return nil, httpError(h.log, err)
	}
	return &TripOutput{Body: trip}, nil
}

// OfferInput takes every field as text, the way the offer form submits it.
type OfferInput struct {
	auth.AuthInput
	Body struct {
		Title          string `json:"title,omitempty" doc:"Defaults to a placeholder"`
		Image          string `json:"image,omitempty" doc:"Defaults to a placeholder"`
		StartDate      string `json:"start_date,omitempty" doc:"YYYY-MM-DD"`
		Days           string `json:"days,omitempty"`
		CarType        string `json:"car_type,omitempty"`
		CarState       string `json:"car_state,omitempty"`
		Itinerary      string `json:"itinerary,omitempty" doc:"JSON array of destinations"`
		AvailableSeats string `json:"available_seats,omitempty"`
		PricePerPerson string `json:"price_per_person,omitempty"`
	}
}

func (h *TripHandler) HandleOffer(ctx context.Context, input *OfferInput) (*TripOutput, error) {
	username, err := h.auth.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	trip, err := h.trips.Offer(ctx, trips.RawOffer{
		Title:          input.Body.Title,
		Image:          input.Body.Image,
		StartDate:      input.Body.StartDate,
		Days:           input.Body.Days,
		CarType:        input.Body.CarType,
		CarState:       input.Body.CarState,
		Itinerary:      input.Body.Itinerary,
		AvailableSeats: input.Body.AvailableSeats,
		PricePerPerson: input.Body.PricePerPerson,
	}, username)
	if err != nil {
		return nil, httpError(h.log, err)
	}
	return &TripOutput{Body: trip}, nil
}
