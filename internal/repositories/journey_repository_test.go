package repositories

import (
	"testing"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/database"
	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"github.com/stretchr/testify/suite"
)

type JourneyRepositoryTestSuite struct {
	suite.Suite
	db   *database.DB
	repo JourneyRepositoryInterface
}

func TestJourneyRepositorySuite(t *testing.T) {
	suite.Run(t, new(JourneyRepositoryTestSuite))
}

func (s *JourneyRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewJourneyRepository(s.db.DB)
}

func (s *JourneyRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *JourneyRepositoryTestSuite) TestGetFresh() {
	journey := &models.Journey{
		OriginCode:       "ASD",
		DestinationCode:  "UT",
		FirstClassPrice:  1530,
		SecondClassPrice: 900,
		UpdatedAt:        time.Now(),
	}
	s.Require().NoError(s.repo.Upsert(journey))

	fresh, err := s.repo.GetFresh("ASD", "UT", time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.Equal(int64(900), fresh.SecondClassPrice)

	// A cutoff in the future makes the entry stale.
	_, err = s.repo.GetFresh("ASD", "UT", time.Now().Add(time.Hour))
	s.ErrorIs(err, ErrJourneyNotFound)

	// The pair is directional.
	_, err = s.repo.GetFresh("UT", "ASD", time.Now().Add(-time.Hour))
	s.ErrorIs(err, ErrJourneyNotFound)
}

func (s *JourneyRepositoryTestSuite) TestUpsert_RefreshesExisting() {
	journey := &models.Journey{
		OriginCode:       "ASD",
		DestinationCode:  "UT",
		FirstClassPrice:  1530,
		SecondClassPrice: 900,
		UpdatedAt:        time.Now().Add(-30 * 24 * time.Hour),
	}
	s.Require().NoError(s.repo.Upsert(journey))

	refreshed := &models.Journey{
		OriginCode:       "ASD",
		DestinationCode:  "UT",
		FirstClassPrice:  1600,
		SecondClassPrice: 940,
	}
	s.Require().NoError(s.repo.Upsert(refreshed))
	s.Equal(journey.ID, refreshed.ID, "upsert must reuse the existing row")

	fresh, err := s.repo.GetFresh("ASD", "UT", time.Now().Add(-time.Minute))
	s.Require().NoError(err)
	s.Equal(int64(940), fresh.SecondClassPrice)
	s.Equal(int64(1600), fresh.FirstClassPrice)

	var count int64
	s.db.Model(&models.Journey{}).Count(&count)
	s.Equal(int64(1), count)
}
