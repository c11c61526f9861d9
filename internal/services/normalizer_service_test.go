package services

import (
	"testing"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"
	"github.com/NixySoftware/ns-flex-insights/internal/parser"

	"github.com/stretchr/testify/suite"
)

type NormalizerServiceTestSuite struct {
	suite.Suite
	service NormalizerServiceInterface
}

func TestNormalizerServiceSuite(t *testing.T) {
	suite.Run(t, new(NormalizerServiceTestSuite))
}

func (s *NormalizerServiceTestSuite) SetupTest() {
	s.service = NewNormalizerService(NewTimeClassifier(), NoopMetrics{})
}

// trainRow returns a raw row as it appears in an NS Flex export, with the
// original Dutch column headers.
func trainRow() parser.RawRow {
	return parser.RawRow{
		"Datum":          "7-6-2023",
		"Checkin":        "7:00",
		"Checkuit":       "7:45",
		"Transactie":     "Reis",
		"Product":        "Treinreizen NS",
		"Af":             "€10,00",
		"Bij":            "",
		"Kl":             "2",
		"Vertrek":        "Amsterdam Centraal",
		"Bestemming":     "Utrecht Centraal",
		"Prive/Zakelijk": "Prive",
	}
}

func (s *NormalizerServiceTestSuite) TestNormalize_TrainRow() {
	result := s.service.Normalize([]parser.RawRow{trainRow()})

	s.Empty(result.Rejected)
	s.Require().Len(result.Transactions, 1)

	tx := result.Transactions[0]
	s.Equal(models.TransactionTypeTrain, tx.Type)
	s.Equal(models.TimeTypePeak, tx.TimeType)
	s.Equal(time.Date(2023, time.June, 7, 7, 0, 0, 0, time.UTC), tx.Start)
	s.Equal(time.Date(2023, time.June, 7, 7, 45, 0, 0, time.UTC), tx.End)
	s.Equal(int64(1000), tx.Debit)
	s.Equal(int64(0), tx.Credit)
	s.Equal(int64(1000), tx.Total)
	s.Equal(2, tx.Class)
	s.Equal("Amsterdam Centraal", tx.Departure)
	s.Equal("Utrecht Centraal", tx.Destination)
	s.Equal("Prive", tx.PrivateOrBusiness)
}

func (s *NormalizerServiceTestSuite) TestNormalize_TypeClassification() {
	testCases := []struct {
		transaction string
		product     string
		expected    models.TransactionType
		description string
	}{
		{"Reis", "Treinreizen NS", models.TransactionTypeTrain, "train journey"},
		{"Reis", "Bus, tram en metro reizen", models.TransactionTypeBusMetroTram, "bus, tram and metro journey"},
		{"Deur tot deur reis", "OV-fiets", models.TransactionTypeBikeRental, "bike rental"},
		{"Deur tot deur reis", "OV-fietsenstalling", models.TransactionTypeBikeParking, "bike parking wins over rental"},
		{"Product op kaart laden", "Toeslag Intercity direct", models.TransactionTypeSupplement, "supplement"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			row := trainRow()
			row["Transactie"] = tc.transaction
			row["Product"] = tc.product

			result := s.service.Normalize([]parser.RawRow{row})

			s.Require().Len(result.Transactions, 1)
			s.Equal(tc.expected, result.Transactions[0].Type)
		})
	}
}

func (s *NormalizerServiceTestSuite) TestNormalize_Rejections() {
	testCases := []struct {
		mutate      func(parser.RawRow)
		reason      string
		description string
	}{
		{func(r parser.RawRow) { delete(r, "Transactie") }, RejectReasonMissingType, "missing type column"},
		{func(r parser.RawRow) { r["Transactie"] = "Saldo opvragen" }, RejectReasonUnclassifiable, "unknown transaction type"},
		{func(r parser.RawRow) { r["Datum"] = "2023/06/07" }, RejectReasonBadTimestamp, "wrong date separator"},
		{func(r parser.RawRow) { r["Checkin"] = "7:60" }, RejectReasonBadTimestamp, "minute out of range"},
		{func(r parser.RawRow) { r["Checkuit"] = "25:00" }, RejectReasonBadTimestamp, "hour out of range in checkout"},
		{func(r parser.RawRow) { r["Af"] = "€1,234" }, RejectReasonBadAmount, "more than two decimals"},
		{func(r parser.RawRow) { r["Af"] = "tien euro" }, RejectReasonBadAmount, "non-numeric amount"},
		{func(r parser.RawRow) { r["Kl"] = "eerste" }, RejectReasonBadClass, "non-numeric class"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			row := trainRow()
			tc.mutate(row)

			result := s.service.Normalize([]parser.RawRow{row})

			s.Empty(result.Transactions)
			s.Require().Len(result.Rejected, 1)
			s.Equal(0, result.Rejected[0].Index)
			s.Equal(tc.reason, result.Rejected[0].Reason)
		})
	}
}

func (s *NormalizerServiceTestSuite) TestNormalize_EndDefaultsToStart() {
	row := trainRow()
	row["Checkuit"] = ""

	result := s.service.Normalize([]parser.RawRow{row})

	s.Require().Len(result.Transactions, 1)
	s.Equal(result.Transactions[0].Start, result.Transactions[0].End)
}

func (s *NormalizerServiceTestSuite) TestNormalize_CreditRow() {
	row := trainRow()
	row["Af"] = ""
	row["Bij"] = "€2,50"

	result := s.service.Normalize([]parser.RawRow{row})

	s.Require().Len(result.Transactions, 1)
	s.Equal(int64(0), result.Transactions[0].Debit)
	s.Equal(int64(250), result.Transactions[0].Credit)
	s.Equal(int64(-250), result.Transactions[0].Total)
}

func (s *NormalizerServiceTestSuite) TestNormalize_SortsByStartKeepingRowOrder() {
	late := trainRow()
	late["Checkin"] = "17:00"
	late["Checkuit"] = "17:30"

	early := trainRow()
	early["Checkin"] = "6:00"
	early["Checkuit"] = "6:30"

	tied := trainRow()
	tied["Checkin"] = "17:00"
	tied["Checkuit"] = "18:00"

	result := s.service.Normalize([]parser.RawRow{late, early, tied})

	s.Require().Len(result.Transactions, 3)
	s.Equal(6, result.Transactions[0].Start.Hour())
	// The two 17:00 rows keep their original relative order.
	s.Equal(time.Date(2023, time.June, 7, 17, 30, 0, 0, time.UTC), result.Transactions[1].End)
	s.Equal(time.Date(2023, time.June, 7, 18, 0, 0, 0, time.UTC), result.Transactions[2].End)
}

func (s *NormalizerServiceTestSuite) TestNormalize_EmptyInput() {
	result := s.service.Normalize(nil)

	s.Empty(result.Transactions)
	s.Empty(result.Rejected)
}

func (s *NormalizerServiceTestSuite) TestParseCents() {
	testCases := []struct {
		input       string
		expected    int64
		description string
	}{
		{"€12,34", 1234, "euro sign with two decimals"},
		{"€10,00", 1000, "round amount"},
		{"12,3", 1230, "single decimal digit is padded"},
		{"12", 1200, "no decimals"},
		{"€-5,00", -500, "negative amount"},
		{"", 0, "empty field counts as zero"},
		{"  €2,50  ", 250, "surrounding whitespace"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			cents, err := parseCents(tc.input)
			s.NoError(err)
			s.Equal(tc.expected, cents)
		})
	}
}

func (s *NormalizerServiceTestSuite) TestParseCents_Malformed() {
	for _, input := range []string{"€1,234", "abc", "1,2,3", "€,50"} {
		_, err := parseCents(input)
		s.ErrorIs(err, ErrMalformedAmount, "input %q", input)
	}
}

func (s *NormalizerServiceTestSuite) TestParseTimestamp_NoZeroPadding() {
	ts, err := parseTimestamp("7-6-2023", "9:05")
	s.NoError(err)
	s.Equal(time.Date(2023, time.June, 7, 9, 5, 0, 0, time.UTC), ts)

	ts, err = parseTimestamp("28-12-2023", "23:59")
	s.NoError(err)
	s.Equal(time.Date(2023, time.December, 28, 23, 59, 0, 0, time.UTC), ts)
}

func (s *NormalizerServiceTestSuite) TestSummarize() {
	peak := trainRow()

	offPeak := trainRow()
	offPeak["Checkin"] = "10:00"
	offPeak["Checkuit"] = "10:45"
	offPeak["Af"] = "€5,00"

	refund := trainRow()
	refund["Checkin"] = "11:00"
	refund["Checkuit"] = ""
	refund["Af"] = ""
	refund["Bij"] = "€1,50"

	result := s.service.Normalize([]parser.RawRow{peak, offPeak, refund})
	s.Require().Len(result.Transactions, 3)

	summary := s.service.Summarize(result.Transactions)

	s.Equal(3, summary.Count)
	s.Equal(int64(1500), summary.Debit)
	s.Equal(int64(150), summary.Credit)
	s.Equal(int64(1350), summary.Total)
	s.Equal(time.Date(2023, time.June, 7, 7, 0, 0, 0, time.UTC), summary.PeriodStart)
	s.Equal(time.Date(2023, time.June, 7, 11, 0, 0, 0, time.UTC), summary.PeriodEnd)

	s.Equal(1, summary.ByTimeType[models.TimeTypePeak].Count)
	s.Equal(int64(1000), summary.ByTimeType[models.TimeTypePeak].Total)
	s.Equal(2, summary.ByTimeType[models.TimeTypeOffPeak].Count)
	s.Equal(int64(350), summary.ByTimeType[models.TimeTypeOffPeak].Total)
}

func (s *NormalizerServiceTestSuite) TestSummarize_Empty() {
	summary := s.service.Summarize(nil)

	s.Equal(0, summary.Count)
	s.True(summary.PeriodStart.IsZero())
	s.True(summary.PeriodEnd.IsZero())
	s.Empty(summary.ByTimeType)
}
