package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NixySoftware/ns-flex-insights/internal/models"
	"github.com/NixySoftware/ns-flex-insights/internal/repositories"
)

const defaultStationLimit = 10

var ErrEmptyQuery = errors.New("search query is required")

type stationService struct {
	stationRepo repositories.StationRepositoryInterface
	client      NSClientInterface
	metrics     MetricsRecorderInterface
}

// NewStationService creates a StationServiceInterface instance.
func NewStationService(
	stationRepo repositories.StationRepositoryInterface,
	client NSClientInterface,
	metrics MetricsRecorderInterface,
) StationServiceInterface {
	return &stationService{
		stationRepo: stationRepo,
		client:      client,
		metrics:     metrics,
	}
}

// Search looks stations up by (partial) name, serving local matches first
// and querying the NS stations API when the cache has none.
func (s *stationService) Search(ctx context.Context, query string, limit int) ([]models.Station, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = defaultStationLimit
	}

	cached, err := s.stationRepo.SearchByName(query, limit)
	if err != nil {
		s.metrics.RecordLookup(lookupKindStations, lookupOutcomeError)
		return nil, fmt.Errorf("failed to search station cache: %w", err)
	}
	if len(cached) > 0 {
		s.metrics.RecordLookup(lookupKindStations, lookupOutcomeCacheHit)
		return cached, nil
	}

	remote, err := s.client.GetStations(ctx, query, limit)
	if err != nil {
		s.metrics.RecordLookup(lookupKindStations, lookupOutcomeError)
		slog.Error("NS station lookup failed", "query", query, "error", err)
		return nil, fmt.Errorf("station lookup failed: %w", err)
	}

	stations := make([]models.Station, 0, len(remote))
	for _, station := range remote {
		stations = append(stations, models.Station{
			Code:      station.Code,
			UICCode:   station.UICCode,
			Name:      station.Name,
			Country:   station.Country,
			Latitude:  station.Latitude,
			Longitude: station.Longitude,
		})
	}

	if err := s.stationRepo.UpsertAll(stations); err != nil {
		slog.Warn("failed to cache stations", "query", query, "error", err)
	}

	s.metrics.RecordLookup(lookupKindStations, lookupOutcomeCacheMiss)
	return stations, nil
}
