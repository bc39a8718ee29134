package handlers

import (
	"context"
	"log/slog"

	"github.com/gdg-garage/safari-trip-api/internal/auth"
	"github.com/gdg-garage/safari-trip-api/internal/booking"
)

type BookingHandler struct {
	engine *booking.Engine
	auth   *auth.AuthHandler
	log    *slog.Logger
}

func NewBookingHandler(engine *booking.Engine, authHandler *auth.AuthHandler, logger *slog.Logger) *BookingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingHandler{engine: engine, auth: authHandler, log: logger}
}

type BookInput struct {
	auth.AuthInput
	ID   string `path:"id" doc:"Trip id"`
	Body struct {
		Seats string `json:"seats,omitempty" doc:"Number of seats to book"`
	}
}

type BookOutput struct {
	Body booking.Receipt
}

func (h *BookingHandler) HandleBook(ctx context.Context, input *BookInput) (*BookOutput, error) {
	username, err := h.auth.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	seats, err := booking.ParseSeats(input.Body.Seats)
	if err != nil {
		return nil, httpError(h.log, err)
	}

	receipt, err := h.engine.Book(ctx, input.ID, seats, username)
	if err != nil {
		return nil, httpError(h.log, err)
	}
	return &BookOutput{Body: receipt}, nil
}
