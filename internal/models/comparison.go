package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComparisonRow is the cost projection of one subscription variant over a
// travel history. Costs are in euro cents; derived prices may carry a
// fractional cent, rounding is a presentation concern.
type ComparisonRow struct {
	Subscription     SubscriptionType `json:"subscription"`
	Comparable       bool             `json:"comparable"`
	SubscriptionCost decimal.Decimal  `json:"subscription_cost"`
	TravelCost       decimal.Decimal  `json:"travel_cost"`
	TotalCost        decimal.Decimal  `json:"total_cost"`
	Savings          decimal.Decimal  `json:"savings"`
}

// ComparisonTable compares every subscription variant over the same travel
// history and date window. Savings are relative to the current variant.
type ComparisonTable struct {
	Current SubscriptionType `json:"current"`
	Class   int              `json:"class"`
	From    time.Time        `json:"from"`
	To      time.Time        `json:"to"`
	Months  int              `json:"months"`
	Rows    []ComparisonRow  `json:"rows"`
}

// Row returns the comparison row for the given variant, if present.
func (t *ComparisonTable) Row(subscription SubscriptionType) (ComparisonRow, bool) {
	for _, row := range t.Rows {
		if row.Subscription == subscription {
			return row, true
		}
	}
	return ComparisonRow{}, false
}
