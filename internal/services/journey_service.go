package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"
	"github.com/NixySoftware/ns-flex-insights/internal/repositories"
)

// Cached journey prices are considered fresh for a week; NS fares change
// rarely outside yearly tariff updates.
const journeyPriceTTL = 7 * 24 * time.Hour

const (
	lookupKindJourney  = "journey"
	lookupKindStations = "stations"

	lookupOutcomeCacheHit  = "cache_hit"
	lookupOutcomeCacheMiss = "cache_miss"
	lookupOutcomeError     = "error"
)

var ErrMissingStation = errors.New("origin and destination are required")

type journeyService struct {
	journeyRepo repositories.JourneyRepositoryInterface
	client      NSClientInterface
	metrics     MetricsRecorderInterface
}

// NewJourneyService creates a JourneyServiceInterface instance.
func NewJourneyService(
	journeyRepo repositories.JourneyRepositoryInterface,
	client NSClientInterface,
	metrics MetricsRecorderInterface,
) JourneyServiceInterface {
	return &journeyService{
		journeyRepo: journeyRepo,
		client:      client,
		metrics:     metrics,
	}
}

// LookupPrice returns the undiscounted fares for a station pair, serving the
// cached entry while fresh and refreshing from the NS price API otherwise.
func (s *journeyService) LookupPrice(ctx context.Context, origin, destination string) (*models.Journey, error) {
	if origin == "" || destination == "" {
		return nil, ErrMissingStation
	}

	since := time.Now().Add(-journeyPriceTTL)
	journey, err := s.journeyRepo.GetFresh(origin, destination, since)
	if err != nil && !errors.Is(err, repositories.ErrJourneyNotFound) {
		s.metrics.RecordLookup(lookupKindJourney, lookupOutcomeError)
		return nil, fmt.Errorf("failed to read journey cache: %w", err)
	}
	if journey != nil {
		s.metrics.RecordLookup(lookupKindJourney, lookupOutcomeCacheHit)
		return journey, nil
	}

	price, err := s.client.GetPrice(ctx, origin, destination)
	if err != nil {
		s.metrics.RecordLookup(lookupKindJourney, lookupOutcomeError)
		slog.Error("NS price lookup failed",
			"origin", origin,
			"destination", destination,
			"error", err)
		return nil, fmt.Errorf("price lookup failed: %w", err)
	}

	journey = &models.Journey{
		OriginCode:       origin,
		DestinationCode:  destination,
		FirstClassPrice:  price.FirstClassPrice,
		SecondClassPrice: price.SecondClassPrice,
		UpdatedAt:        time.Now(),
	}

	if err := s.journeyRepo.Upsert(journey); err != nil {
		// Cache write failure is non-fatal.
		slog.Warn("failed to cache journey price",
			"origin", origin,
			"destination", destination,
			"error", err)
	}

	s.metrics.RecordLookup(lookupKindJourney, lookupOutcomeCacheMiss)
	slog.Info("journey price refreshed",
		"origin", origin,
		"destination", destination,
		"second_class_price", price.SecondClassPrice)

	return journey, nil
}
