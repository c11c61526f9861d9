package services

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSubscription = errors.New("invalid subscription type")
	ErrInvalidClass        = errors.New("fare class must be 1 or 2")
	ErrInvalidPeriod       = errors.New("period end precedes period start")
	ErrEmptyPeriod         = errors.New("no transactions and no explicit period to compare over")
)

// daysPerMonth is the average Gregorian month length, used to prorate the
// subscription fee over the compared period.
const daysPerMonth = 30.4375

var (
	decimalOne      = decimal.NewFromInt(1)
	discountFull    = decimal.NewFromInt(1)
	discountPartial = decimal.NewFromFloat(0.4)
)

type pricingService struct {
	metrics MetricsRecorderInterface
}

// NewPricingService creates a PricingServiceInterface instance.
func NewPricingService(metrics MetricsRecorderInterface) PricingServiceInterface {
	return &pricingService{metrics: metrics}
}

// Discount returns the discount fraction the given variant applies to the
// transaction: 1 for fully covered time types, 0.4 for partially covered
// ones, 0 otherwise.
func (s *pricingService) Discount(transaction *models.Transaction, subscription models.SubscriptionType) decimal.Decimal {
	if models.FullDiscountCoverage[subscription].Contains(transaction.TimeType) {
		return discountFull
	}
	if models.PartialDiscountCoverage[subscription].Contains(transaction.TimeType) {
		return discountPartial
	}
	return decimal.Zero
}

// BasePrice recovers the estimated undiscounted price from the observed,
// already-discounted total. When the discount is full the base price is
// unrecoverable and the observed total is returned as-is; this is a known
// approximation, not a defect.
func (s *pricingService) BasePrice(transaction *models.Transaction, subscription models.SubscriptionType) decimal.Decimal {
	total := decimal.NewFromInt(transaction.Total)

	discount := s.Discount(transaction, subscription)
	if discount.Equal(discountFull) {
		return total
	}

	return total.Div(decimalOne.Sub(discount))
}

// SubscriptionPrice applies a hypothetical variant's discount to the
// observed total.
func (s *pricingService) SubscriptionPrice(transaction *models.Transaction, subscription models.SubscriptionType) decimal.Decimal {
	total := decimal.NewFromInt(transaction.Total)
	discount := s.Discount(transaction, subscription)

	return total.Mul(decimalOne.Sub(discount))
}

// Compare projects the cost of every subscription variant over the given
// travel history: the prorated monthly fee plus the discounted travel cost.
// Variants whose cost cannot be derived from history recorded under the
// current variant are marked incomparable. Savings are relative to the
// current variant's total.
func (s *pricingService) Compare(transactions []models.Transaction, current models.SubscriptionType, class int, from, to time.Time) (*models.ComparisonTable, error) {
	if !models.IsValidSubscriptionType(current) {
		return nil, ErrInvalidSubscription
	}
	if class != 1 && class != 2 {
		return nil, ErrInvalidClass
	}

	from, to, err := resolvePeriod(transactions, from, to)
	if err != nil {
		return nil, err
	}

	months := monthsBetween(from, to)

	table := &models.ComparisonTable{
		Current: current,
		Class:   class,
		From:    from,
		To:      to,
		Months:  months,
		Rows:    make([]models.ComparisonRow, 0, len(models.AllSubscriptionTypes)),
	}

	for _, subscription := range models.AllSubscriptionTypes {
		subscriptionCost := decimal.NewFromInt(models.MonthlyPrices[subscription].ForClass(class) * int64(months))

		travelCost := decimal.Zero
		for i := range transactions {
			travelCost = travelCost.Add(s.SubscriptionPrice(&transactions[i], subscription))
		}

		table.Rows = append(table.Rows, models.ComparisonRow{
			Subscription:     subscription,
			Comparable:       models.IsComparable(current, subscription),
			SubscriptionCost: subscriptionCost,
			TravelCost:       travelCost,
			TotalCost:        subscriptionCost.Add(travelCost),
		})
	}

	currentRow, _ := table.Row(current)
	for i := range table.Rows {
		table.Rows[i].Savings = currentRow.TotalCost.Sub(table.Rows[i].TotalCost)
	}

	s.metrics.RecordComparison(current)
	slog.Info("subscription comparison computed",
		"current", current,
		"class", class,
		"months", months,
		"transactions", len(transactions))

	return table, nil
}

// resolvePeriod falls back to the travel history's own range when no
// explicit window was given. The transactions are sorted by start time, so
// the range is simply first to last.
func resolvePeriod(transactions []models.Transaction, from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() || to.IsZero() {
		if len(transactions) == 0 {
			return time.Time{}, time.Time{}, ErrEmptyPeriod
		}
		if from.IsZero() {
			from = transactions[0].Start
		}
		if to.IsZero() {
			to = transactions[len(transactions)-1].Start
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}

	return from, to, nil
}

// monthsBetween returns the period length rounded up to whole months, with
// a minimum of one: a subscription is paid for every started month.
func monthsBetween(from, to time.Time) int {
	months := int(math.Ceil(to.Sub(from).Hours() / (24 * daysPerMonth)))
	if months < 1 {
		return 1
	}
	return months
}
