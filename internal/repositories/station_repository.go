package repositories

import (
	"errors"
	"fmt"

	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrStationNotFound = errors.New("station not found")

// stationRepository implements StationRepositoryInterface
type stationRepository struct {
	db *gorm.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *gorm.DB) StationRepositoryInterface {
	return &stationRepository{db: db}
}

// SearchByName retrieves cached stations matching the query.
func (r *stationRepository) SearchByName(query string, limit int) ([]models.Station, error) {
	var stations []models.Station
	if err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Find(&stations).Error; err != nil {
		return nil, fmt.Errorf("failed to search stations: %w", err)
	}
	return stations, nil
}

// GetByCode retrieves a station by its NS station code
func (r *stationRepository) GetByCode(code string) (*models.Station, error) {
	station := &models.Station{}
	if err := r.db.First(station, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStationNotFound
		}
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	return station, nil
}

// UpsertAll inserts or refreshes the given stations, keyed by station code.
func (r *stationRepository) UpsertAll(stations []models.Station) error {
	if len(stations) == 0 {
		return nil
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"uic_code", "name", "country", "latitude", "longitude", "updated_at"}),
	}).Create(&stations).Error
	if err != nil {
		return fmt.Errorf("failed to upsert stations: %w", err)
	}
	return nil
}
