package models

import "time"

// TimeTypeTotals aggregates transaction amounts for a single time type.
// Amounts are in euro cents.
type TimeTypeTotals struct {
	Count  int   `json:"count"`
	Debit  int64 `json:"debit"`
	Credit int64 `json:"credit"`
	Total  int64 `json:"total"`
}

// TravelSummary aggregates a normalized travel history: the covered period,
// overall totals and a per-time-type breakdown.
type TravelSummary struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	Count  int   `json:"count"`
	Debit  int64 `json:"debit"`
	Credit int64 `json:"credit"`
	Total  int64 `json:"total"`

	ByTimeType map[TimeType]TimeTypeTotals `json:"by_time_type"`
}
