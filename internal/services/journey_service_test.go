package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/database"
	"github.com/NixySoftware/ns-flex-insights/internal/models"
	"github.com/NixySoftware/ns-flex-insights/internal/nsapi"
	"github.com/NixySoftware/ns-flex-insights/internal/repositories"

	"github.com/stretchr/testify/suite"
)

type JourneyServiceTestSuite struct {
	suite.Suite
	db      *database.DB
	repo    repositories.JourneyRepositoryInterface
	client  *stubNSClient
	service JourneyServiceInterface
}

func TestJourneyServiceSuite(t *testing.T) {
	suite.Run(t, new(JourneyServiceTestSuite))
}

func (s *JourneyServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = repositories.NewJourneyRepository(s.db.DB)
	s.client = &stubNSClient{
		price: &nsapi.JourneyPrice{FirstClassPrice: 1530, SecondClassPrice: 900},
	}
	s.service = NewJourneyService(s.repo, s.client, NoopMetrics{})
}

func (s *JourneyServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *JourneyServiceTestSuite) TestLookupPrice_MissingStation() {
	_, err := s.service.LookupPrice(context.Background(), "", "UT")
	s.ErrorIs(err, ErrMissingStation)

	_, err = s.service.LookupPrice(context.Background(), "ASD", "")
	s.ErrorIs(err, ErrMissingStation)
}

func (s *JourneyServiceTestSuite) TestLookupPrice_FetchesAndCaches() {
	journey, err := s.service.LookupPrice(context.Background(), "ASD", "UT")
	s.Require().NoError(err)
	s.Equal(int64(900), journey.SecondClassPrice)
	s.Equal(int64(1530), journey.FirstClassPrice)
	s.Equal(1, s.client.priceCalls)

	// Second lookup is served from the cache.
	journey, err = s.service.LookupPrice(context.Background(), "ASD", "UT")
	s.Require().NoError(err)
	s.Equal(int64(900), journey.SecondClassPrice)
	s.Equal(1, s.client.priceCalls)
}

func (s *JourneyServiceTestSuite) TestLookupPrice_StaleEntryIsRefreshed() {
	stale := &models.Journey{
		OriginCode:       "ASD",
		DestinationCode:  "UT",
		FirstClassPrice:  1400,
		SecondClassPrice: 850,
	}
	s.Require().NoError(s.repo.Upsert(stale))
	// Age the entry past the freshness window.
	s.Require().NoError(s.db.Model(stale).Update("updated_at", time.Now().Add(-8*24*time.Hour)).Error)

	journey, err := s.service.LookupPrice(context.Background(), "ASD", "UT")
	s.Require().NoError(err)
	s.Equal(int64(900), journey.SecondClassPrice)
	s.Equal(1, s.client.priceCalls)
}

func (s *JourneyServiceTestSuite) TestLookupPrice_UpstreamError() {
	s.client.priceErr = errors.New("upstream down")

	_, err := s.service.LookupPrice(context.Background(), "ASD", "UT")
	s.Error(err)
}

func (s *JourneyServiceTestSuite) TestLookupPrice_NoPriceFound() {
	s.client.priceErr = nsapi.ErrNoPriceFound

	_, err := s.service.LookupPrice(context.Background(), "ASD", "UT")
	s.ErrorIs(err, nsapi.ErrNoPriceFound)
}
