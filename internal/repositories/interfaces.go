package repositories

import (
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"github.com/google/uuid"
)

// ImportRepositoryInterface persists uploaded travel-history imports and
// their normalized transactions.
type ImportRepositoryInterface interface {
	Create(imp *models.Import, transactions []models.Transaction) error
	GetByID(id uuid.UUID) (*models.Import, error)
	List() ([]models.Import, error)
}

// TransactionRepositoryInterface reads normalized transactions back in
// their canonical order (start ascending, row index as tie-breaker).
type TransactionRepositoryInterface interface {
	GetByImportID(importID uuid.UUID) ([]models.Transaction, error)
	GetByImportIDAndRange(importID uuid.UUID, from, to time.Time) ([]models.Transaction, error)
}

// StationRepositoryInterface caches NS station records.
type StationRepositoryInterface interface {
	SearchByName(query string, limit int) ([]models.Station, error)
	GetByCode(code string) (*models.Station, error)
	UpsertAll(stations []models.Station) error
}

// JourneyRepositoryInterface caches station-pair fares.
type JourneyRepositoryInterface interface {
	GetFresh(origin, destination string, since time.Time) (*models.Journey, error)
	Upsert(journey *models.Journey) error
}
