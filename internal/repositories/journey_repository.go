package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"gorm.io/gorm"
)

var ErrJourneyNotFound = errors.New("journey not found")

// journeyRepository implements JourneyRepositoryInterface
type journeyRepository struct {
	db *gorm.DB
}

// NewJourneyRepository creates a new journey repository
func NewJourneyRepository(db *gorm.DB) JourneyRepositoryInterface {
	return &journeyRepository{db: db}
}

// GetFresh retrieves the cached journey for a station pair if it was updated
// after the given cutoff.
func (r *journeyRepository) GetFresh(origin, destination string, since time.Time) (*models.Journey, error) {
	journey := &models.Journey{}
	err := r.db.Where("origin_code = ? AND destination_code = ? AND updated_at >= ?", origin, destination, since).
		First(journey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJourneyNotFound
		}
		return nil, fmt.Errorf("failed to get journey: %w", err)
	}
	return journey, nil
}

// Upsert inserts or refreshes the cached journey for a station pair.
func (r *journeyRepository) Upsert(journey *models.Journey) error {
	var existing models.Journey
	err := r.db.Where("origin_code = ? AND destination_code = ?", journey.OriginCode, journey.DestinationCode).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(journey).Error; err != nil {
				return fmt.Errorf("failed to create journey: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to get journey for upsert: %w", err)
	}

	existing.FirstClassPrice = journey.FirstClassPrice
	existing.SecondClassPrice = journey.SecondClassPrice
	existing.UpdatedAt = time.Now()
	if err := r.db.Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update journey: %w", err)
	}
	*journey = existing

	return nil
}
