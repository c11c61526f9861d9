package services

import (
	"context"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"
	"github.com/NixySoftware/ns-flex-insights/internal/nsapi"
	"github.com/NixySoftware/ns-flex-insights/internal/parser"

	"github.com/shopspring/decimal"
)

// TimeClassifierInterface classifies a journey timestamp into a fare window.
type TimeClassifierInterface interface {
	Classify(start time.Time, product string) models.TimeType
}

// RejectedRow describes a raw row that was filtered out during
// normalization, reported as a diagnostic rather than an error.
type RejectedRow struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// NormalizeResult carries the normalized transactions together with the
// rows that were rejected along the way.
type NormalizeResult struct {
	Transactions []models.Transaction `json:"transactions"`
	Rejected     []RejectedRow        `json:"rejected"`
}

// NormalizerServiceInterface converts raw travel-history rows into typed,
// classified, chronologically sorted transactions.
type NormalizerServiceInterface interface {
	Normalize(rows []parser.RawRow) NormalizeResult
	Summarize(transactions []models.Transaction) models.TravelSummary
}

// PricingServiceInterface implements the subscription discount model and the
// cross-variant cost comparison.
type PricingServiceInterface interface {
	Discount(transaction *models.Transaction, subscription models.SubscriptionType) decimal.Decimal
	BasePrice(transaction *models.Transaction, subscription models.SubscriptionType) decimal.Decimal
	SubscriptionPrice(transaction *models.Transaction, subscription models.SubscriptionType) decimal.Decimal
	Compare(transactions []models.Transaction, current models.SubscriptionType, class int, from, to time.Time) (*models.ComparisonTable, error)
}

// NSClientInterface is the remote NS API surface the lookup services need.
type NSClientInterface interface {
	GetPrice(ctx context.Context, fromStation, toStation string) (*nsapi.JourneyPrice, error)
	GetStations(ctx context.Context, query string, limit int) ([]nsapi.Station, error)
}

// JourneyServiceInterface resolves station-pair fares, serving cached prices
// while they are fresh and falling back to the NS price API.
type JourneyServiceInterface interface {
	LookupPrice(ctx context.Context, origin, destination string) (*models.Journey, error)
}

// StationServiceInterface searches stations, backed by the local cache and
// the NS stations API.
type StationServiceInterface interface {
	Search(ctx context.Context, query string, limit int) ([]models.Station, error)
}

// MetricsRecorderInterface records operational metrics for ingestion,
// comparison and remote lookups.
type MetricsRecorderInterface interface {
	RecordRowsNormalized(count int)
	RecordRowRejected(reason string)
	RecordNormalizeDuration(duration time.Duration)
	RecordComparison(current models.SubscriptionType)
	RecordLookup(kind, outcome string)
}
