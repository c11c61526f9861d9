package dto

import (
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"github.com/google/uuid"
)

// ImportInfo summarizes a stored travel-history import
type ImportInfo struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	RowCount  int       `json:"row_count"`
	Rejected  int       `json:"rejected"`
	CreatedAt time.Time `json:"created_at"`
}

// RejectedRowInfo describes a source row that was filtered out during
// normalization
type RejectedRowInfo struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ParseWarningInfo describes a non-fatal CSV parsing issue
type ParseWarningInfo struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// UploadTravelHistoryResponse is the result of ingesting an uploaded
// travel-history file: the stored import, its normalized transactions,
// the aggregated summary, and any per-row diagnostics
type UploadTravelHistoryResponse struct {
	Import       ImportInfo           `json:"import"`
	Transactions []models.Transaction `json:"transactions"`
	Summary      models.TravelSummary `json:"summary"`
	Rejected     []RejectedRowInfo    `json:"rejected"`
	Warnings     []ParseWarningInfo   `json:"warnings"`
}

// ListImportsResponse lists the stored travel-history imports
type ListImportsResponse struct {
	Imports []ImportInfo `json:"imports"`
}

// ListTransactionsResponse returns the normalized transactions of one import
// in canonical order, together with their aggregated summary
type ListTransactionsResponse struct {
	Import       ImportInfo           `json:"import"`
	Transactions []models.Transaction `json:"transactions"`
	Summary      models.TravelSummary `json:"summary"`
}
