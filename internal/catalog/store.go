// Package catalog persists the trip collection and serialises every change to it.
package catalog

import (
	"context"

	"github.com/gdg-garage/safari-trip-api/internal/models"
)

// Store is the durable trip collection. Both operations act on the whole
// collection; there is no incremental update.
type Store interface {
	// Load returns every trip. A store that has never been written returns
	// an empty slice and no error.
	Load(ctx context.Context) ([]models.Trip, error)
	// Save replaces the stored collection with trips.
	Save(ctx context.Context, trips []models.Trip) error
}
