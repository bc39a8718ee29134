package trips

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdg-garage/safari-trip-api/internal/catalog"
	"github.com/gdg-garage/safari-trip-api/internal/metrics"
	"github.com/gdg-garage/safari-trip-api/internal/models"
	"github.com/gdg-garage/safari-trip-api/internal/notifier"
)

// Service runs the offer and browse paths against the catalog.
type Service struct {
	catalog  *catalog.Catalog
	notifier notifier.Notifier
	factory  Factory
	log      *slog.Logger
}

func NewService(c *catalog.Catalog, n notifier.Notifier, logger *slog.Logger) *Service {
	if n == nil {
		n = notifier.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: c, notifier: n, log: logger}
}

// WithFactory replaces the trip factory; tests use it to pin ids and clocks.
func (s *Service) WithFactory(f Factory) *Service {
	s.factory = f
	return s
}

// Offer parses, validates and publishes a new trip owned by offeredBy.
func (s *Service) Offer(ctx context.Context, raw RawOffer, offeredBy string) (models.Trip, error) {
	offer, err := ParseOffer(raw)
	if err == nil {
		err = Validate(offer)
	}
	if err != nil {
		metrics.OffersTotal.WithLabelValues("invalid").Inc()
		return models.Trip{}, fmt.Errorf("trips.Service.Offer: %w", err)
	}

	trip := s.factory.Create(offer, offeredBy)
	err = s.catalog.Update(ctx, func(all []models.Trip) ([]models.Trip, error) {
		return append(all, trip), nil
	})
	if err != nil {
		metrics.OffersTotal.WithLabelValues("error").Inc()
		return models.Trip{}, fmt.Errorf("trips.Service.Offer: %w", err)
	}
	metrics.OffersTotal.WithLabelValues("success").Inc()

	s.log.InfoContext(ctx, "trip offered",
		"trip_id", trip.ID,
		"offered_by", offeredBy,
		"seats", trip.AvailableSeats,
	)
	if err := s.notifier.NotifyOffer(trip); err != nil {
		metrics.NotificationFailures.Inc()
		s.log.WarnContext(ctx, "offer notification failed", "trip_id", trip.ID, "error", err)
	}
	return trip, nil
}

// SearchResult is a Result plus whether the catalog could be read at all.
type SearchResult struct {
	Result
	CatalogAvailable bool
}

// Search runs the ANY-destination search over the current catalog.
func (s *Service) Search(ctx context.Context, c Criteria) SearchResult {
	all, ok := s.catalog.Browse(ctx)
	return SearchResult{Result: Search(all, c), CatalogAvailable: ok}
}

// SearchStrict runs the ALL-destinations search over the current catalog.
func (s *Service) SearchStrict(ctx context.Context, c Criteria) (trips []models.Trip, catalogAvailable bool) {
	all, ok := s.catalog.Browse(ctx)
	return SearchStrict(all, c), ok
}

func (s *Service) Get(ctx context.Context, id string) (models.Trip, error) {
	trip, err := s.catalog.Get(ctx, id)
	if err != nil && !errors.Is(err, models.ErrNotFound) && !errors.Is(err, models.ErrCatalogUnavailable) {
		err = fmt.Errorf("%w: %v", models.ErrCatalogUnavailable, err)
	}
	if err != nil {
		return models.Trip{}, fmt.Errorf("trips.Service.Get: %w", err)
	}
	return trip, nil
}
