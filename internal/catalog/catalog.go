package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdg-garage/safari-trip-api/internal/models"
	"golang.org/x/sync/semaphore"
)

// Catalog is the only way trips are read or changed. Changes run one at a
// time: each Update reloads the store, applies its change and saves before
// the next Update may load.
type Catalog struct {
	store  Store
	writer *semaphore.Weighted
	log    *slog.Logger
}

func New(store Store, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		store:  store,
		writer: semaphore.NewWeighted(1),
		log:    logger,
	}
}

// Browse returns the current trips for read-only use. When the store cannot
// be read it logs the failure and returns an empty catalog with ok=false so
// callers can tell "unavailable" apart from "empty".
func (c *Catalog) Browse(ctx context.Context) (trips []models.Trip, ok bool) {
	trips, err := c.store.Load(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "catalog unavailable", "error", err)
		return []models.Trip{}, false
	}
	return trips, true
}

// Get returns one trip by id.
func (c *Catalog) Get(ctx context.Context, id string) (models.Trip, error) {
	trips, err := c.store.Load(ctx)
	if err != nil {
		return models.Trip{}, fmt.Errorf("catalog.Catalog.Get: %w", err)
	}
	for _, t := range trips {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trip{}, fmt.Errorf("catalog.Catalog.Get: trip %q: %w", id, models.ErrNotFound)
}

// UpdateFunc receives a freshly loaded catalog and returns the catalog to
// save. Returning an error aborts the update without saving.
type UpdateFunc func(trips []models.Trip) ([]models.Trip, error)

// Update runs fn as a read-modify-write against the store. It waits for
// earlier updates to finish, or for ctx to be done.
//
// A load failure returns ErrCatalogUnavailable and nothing is saved. A save
// failure returns ErrPersistence; the change made by fn is then lost and must
// not be reported as committed.
func (c *Catalog) Update(ctx context.Context, fn UpdateFunc) error {
	if err := c.writer.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("catalog.Catalog.Update: %w", err)
	}
	defer c.writer.Release(1)

	trips, err := c.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrCatalogUnavailable) {
			err = fmt.Errorf("%w: %v", models.ErrCatalogUnavailable, err)
		}
		return fmt.Errorf("catalog.Catalog.Update: %w", err)
	}

	updated, err := fn(trips)
	if err != nil {
		return err
	}

	if err := c.store.Save(ctx, updated); err != nil {
		c.log.ErrorContext(ctx, "catalog save failed", "error", err)
		return fmt.Errorf("catalog.Catalog.Update: %w: %v", models.ErrPersistence, err)
	}
	return nil
}
