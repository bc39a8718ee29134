package catalog

import (
	"context"
	"fmt"

	"github.com/gdg-garage/safari-trip-api/internal/models"
	"gorm.io/gorm"
)

// GormStore keeps the catalog in the trips and bookings tables.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context) ([]models.Trip, error) {
	trips := []models.Trip{}
	err := s.db.WithContext(ctx).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("booked_at asc, id asc")
		}).
		Order("created_at asc, id asc").
		Find(&trips).Error
	if err != nil {
		return nil, fmt.Errorf("catalog.GormStore.Load: %w: %v", models.ErrCatalogUnavailable, err)
	}
	for i := range trips {
		if trips[i].Bookings == nil {
			trips[i].Bookings = []models.Booking{}
		}
	}
	return trips, nil
}

// Save replaces both tables in a single transaction.
func (s *GormStore) Save(ctx context.Context, trips []models.Trip) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Trip{}).Error; err != nil {
			return err
		}
		if len(trips) == 0 {
			return nil
		}

		rows := make([]models.Trip, len(trips))
		var bookings []models.Booking
		for i, t := range trips {
			rows[i] = t
			rows[i].Bookings = nil
			for _, b := range t.Bookings {
				// Row ids are reassigned on every save; insertion order keeps bookings ordered.
				b.ID = 0
				b.TripID = t.ID
				bookings = append(bookings, b)
			}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		if len(bookings) > 0 {
			if err := tx.Create(&bookings).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog.GormStore.Save: %w", err)
	}
	return nil
}
