package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"
	"github.com/NixySoftware/ns-flex-insights/internal/parser"
)

// Rejection reasons, used both in diagnostics and as metric labels.
const (
	RejectReasonMissingType    = "missing_type"
	RejectReasonUnclassifiable = "unclassifiable_type"
	RejectReasonBadTimestamp   = "invalid_timestamp"
	RejectReasonBadAmount      = "invalid_amount"
	RejectReasonBadClass       = "invalid_class"
)

var (
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrMalformedAmount    = errors.New("malformed currency amount")
)

// columnNames translates the Dutch column headers of a travel-history export
// to canonical field names. Unrecognized headers pass through unchanged.
var columnNames = map[string]string{
	"Af":            "debit",
	"Bestemming":    "destination",
	"Bij":           "credit",
	"Checkin":       "startTime",
	"Checkuit":      "endTime",
	"Datum":         "date",
	"Kl":            "class",
	"Opmerking":     "remark",
	"Prive/Zakelijk": "privateOrBusiness",
	"Product":       "product",
	"Transactie":    "type",
	"Vertrek":       "departure",
}

// classificationRule derives a transaction type from lower-cased substrings
// of the raw transaction and product fields. Rules are evaluated in order;
// the first match wins. The bike parking rule must precede the bike rental
// rule because "ov-fietsenstalling" also contains "ov-fiets".
type classificationRule struct {
	transaction string
	product     string
	txType      models.TransactionType
}

var classificationRules = []classificationRule{
	{transaction: "deur tot deur", product: "stalling", txType: models.TransactionTypeBikeParking},
	{transaction: "deur tot deur", product: "ov-fiets", txType: models.TransactionTypeBikeRental},
	{transaction: "reis", product: "bus, tram en metro", txType: models.TransactionTypeBusMetroTram},
	{transaction: "reis", product: "trein", txType: models.TransactionTypeTrain},
	{transaction: "product op kaart laden", product: "toeslag", txType: models.TransactionTypeSupplement},
}

type normalizerService struct {
	classifier TimeClassifierInterface
	metrics    MetricsRecorderInterface
}

// NewNormalizerService creates a NormalizerServiceInterface instance.
func NewNormalizerService(classifier TimeClassifierInterface, metrics MetricsRecorderInterface) NormalizerServiceInterface {
	return &normalizerService{
		classifier: classifier,
		metrics:    metrics,
	}
}

// Normalize converts raw rows into typed transactions. Rows that cannot be
// classified or parsed are filtered out and reported in the result; nothing
// here is fatal. The returned transactions are sorted by start time
// ascending, ties keeping the original row order.
func (s *normalizerService) Normalize(rows []parser.RawRow) NormalizeResult {
	started := time.Now()

	transactions := make([]models.Transaction, 0, len(rows))
	var rejected []RejectedRow

	reject := func(index int, reason string) {
		rejected = append(rejected, RejectedRow{Index: index, Reason: reason})
		s.metrics.RecordRowRejected(reason)
	}

	for i, raw := range rows {
		row := remapColumns(raw)

		rawType, ok := row["type"]
		if !ok {
			reject(i, RejectReasonMissingType)
			continue
		}

		txType, ok := classifyTransaction(rawType, row["product"])
		if !ok {
			reject(i, RejectReasonUnclassifiable)
			continue
		}

		start, err := parseTimestamp(row["date"], row["startTime"])
		if err != nil {
			reject(i, RejectReasonBadTimestamp)
			continue
		}

		end := start
		if endTime := strings.TrimSpace(row["endTime"]); endTime != "" {
			end, err = parseTimestamp(row["date"], endTime)
			if err != nil {
				reject(i, RejectReasonBadTimestamp)
				continue
			}
		}

		debit, err := parseCents(row["debit"])
		if err != nil {
			reject(i, RejectReasonBadAmount)
			continue
		}

		credit, err := parseCents(row["credit"])
		if err != nil {
			reject(i, RejectReasonBadAmount)
			continue
		}

		class, err := parseClass(row["class"])
		if err != nil {
			reject(i, RejectReasonBadClass)
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:              row["date"],
			Start:             start,
			End:               end,
			Type:              txType,
			TimeType:          s.classifier.Classify(start, row["product"]),
			Debit:             debit,
			Credit:            credit,
			Total:             debit - credit,
			Class:             class,
			Product:           row["product"],
			PrivateOrBusiness: row["privateOrBusiness"],
			Departure:         row["departure"],
			Destination:       row["destination"],
			RowIndex:          i,
		})
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Start.Before(transactions[j].Start)
	})

	s.metrics.RecordRowsNormalized(len(transactions))
	s.metrics.RecordNormalizeDuration(time.Since(started))

	if len(rejected) > 0 {
		slog.Warn("rows rejected during normalization",
			"rejected", len(rejected),
			"accepted", len(transactions))
	}
	slog.Info("travel history normalized",
		"rows", len(rows),
		"transactions", len(transactions),
		"duration_ms", time.Since(started).Milliseconds())

	return NormalizeResult{
		Transactions: transactions,
		Rejected:     rejected,
	}
}

// Summarize aggregates overall and per-time-type totals over a normalized,
// sorted travel history.
func (s *normalizerService) Summarize(transactions []models.Transaction) models.TravelSummary {
	summary := models.TravelSummary{
		Count:      len(transactions),
		ByTimeType: make(map[models.TimeType]models.TimeTypeTotals, len(models.AllTimeTypes)),
	}

	if len(transactions) == 0 {
		return summary
	}

	summary.PeriodStart = transactions[0].Start
	summary.PeriodEnd = transactions[len(transactions)-1].Start

	for i := range transactions {
		tx := &transactions[i]
		summary.Debit += tx.Debit
		summary.Credit += tx.Credit
		summary.Total += tx.Total

		totals := summary.ByTimeType[tx.TimeType]
		totals.Count++
		totals.Debit += tx.Debit
		totals.Credit += tx.Credit
		totals.Total += tx.Total
		summary.ByTimeType[tx.TimeType] = totals
	}

	return summary
}

func remapColumns(row parser.RawRow) parser.RawRow {
	remapped := make(parser.RawRow, len(row))
	for key, value := range row {
		if canonical, ok := columnNames[key]; ok {
			key = canonical
		}
		remapped[key] = value
	}
	return remapped
}

func classifyTransaction(rawType, product string) (models.TransactionType, bool) {
	rawType = strings.ToLower(rawType)
	product = strings.ToLower(product)

	for _, rule := range classificationRules {
		if strings.Contains(rawType, rule.transaction) && strings.Contains(product, rule.product) {
			return rule.txType, true
		}
	}
	return "", false
}

// parseTimestamp combines a d-M-y date with an H:m time of day. The fields
// are parsed digit by digit rather than through a time layout because the
// export does not zero-pad.
func parseTimestamp(date, clock string) (time.Time, error) {
	dateParts := strings.Split(strings.TrimSpace(date), "-")
	if len(dateParts) != 3 {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrMalformedTimestamp, date)
	}

	clockParts := strings.Split(strings.TrimSpace(clock), ":")
	if len(clockParts) != 2 {
		return time.Time{}, fmt.Errorf("%w: bad time %q", ErrMalformedTimestamp, clock)
	}

	day, err := strconv.Atoi(dateParts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad day %q", ErrMalformedTimestamp, dateParts[0])
	}
	month, err := strconv.Atoi(dateParts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad month %q", ErrMalformedTimestamp, dateParts[1])
	}
	year, err := strconv.Atoi(dateParts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad year %q", ErrMalformedTimestamp, dateParts[2])
	}

	hour, err := strconv.Atoi(clockParts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad hour %q", ErrMalformedTimestamp, clockParts[0])
	}
	minute, err := strconv.Atoi(clockParts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad minute %q", ErrMalformedTimestamp, clockParts[1])
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %q %q out of range", ErrMalformedTimestamp, date, clock)
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

// parseCents converts a locale-formatted amount such as "€12,34" to integer
// cents. The integer and fractional parts are parsed separately so no
// floating point is involved. An empty field counts as zero.
func parseCents(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	value = strings.TrimPrefix(value, "€")
	value = strings.TrimSpace(value)

	negative := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")

	wholePart := value
	fracPart := ""
	if idx := strings.Index(value, ","); idx >= 0 {
		wholePart = value[:idx]
		fracPart = value[idx+1:]
	}

	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, value)
	}

	cents := whole * 100
	if fracPart != "" {
		if len(fracPart) > 2 {
			return 0, fmt.Errorf("%w: %q has more than two decimals", ErrMalformedAmount, value)
		}
		if len(fracPart) == 1 {
			fracPart += "0"
		}
		frac, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil || frac < 0 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, value)
		}
		cents += frac
	}

	if negative {
		cents = -cents
	}
	return cents, nil
}

func parseClass(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
