package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/NixySoftware/ns-flex-insights/internal/database"
	"github.com/NixySoftware/ns-flex-insights/internal/dto"
	"github.com/NixySoftware/ns-flex-insights/internal/nsapi"
	"github.com/NixySoftware/ns-flex-insights/internal/repositories"
	"github.com/NixySoftware/ns-flex-insights/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// fakeNSClient serves canned NS API responses.
type fakeNSClient struct {
	price    *nsapi.JourneyPrice
	priceErr error
	stations []nsapi.Station
}

func (c *fakeNSClient) GetPrice(ctx context.Context, fromStation, toStation string) (*nsapi.JourneyPrice, error) {
	if c.priceErr != nil {
		return nil, c.priceErr
	}
	return c.price, nil
}

func (c *fakeNSClient) GetStations(ctx context.Context, query string, limit int) ([]nsapi.Station, error) {
	return c.stations, nil
}

type JourneyHandlerSuite struct {
	suite.Suite
	db      *database.DB
	client  *fakeNSClient
	handler *JourneyHandler
	echo    *echo.Echo
}

func TestJourneyHandlerSuite(t *testing.T) {
	suite.Run(t, new(JourneyHandlerSuite))
}

func (s *JourneyHandlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.client = &fakeNSClient{
		price: &nsapi.JourneyPrice{FirstClassPrice: 1530, SecondClassPrice: 900},
	}

	journeyRepo := repositories.NewJourneyRepository(s.db.DB)
	journeys := services.NewJourneyService(journeyRepo, s.client, services.NoopMetrics{})
	s.handler = NewJourneyHandler(journeys)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

func (s *JourneyHandlerSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *JourneyHandlerSuite) priceRequest(from, to string) (echo.Context, *httptest.ResponseRecorder) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journeys/price?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *JourneyHandlerSuite) TestGetPrice() {
	c, rec := s.priceRequest("ASD", "UT")

	s.Require().NoError(s.handler.GetPrice(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.JourneyPriceResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("ASD", resp.Origin)
	s.Equal("UT", resp.Destination)
	s.Equal(int64(1530), resp.FirstClassPrice)
	s.Equal(int64(900), resp.SecondClassPrice)
}

func (s *JourneyHandlerSuite) TestGetPrice_MissingStation() {
	c, _ := s.priceRequest("ASD", "")

	// The validator rejects the missing destination.
	err := s.handler.GetPrice(c)
	s.Error(err)
}

func (s *JourneyHandlerSuite) TestGetPrice_NoPriceFound() {
	s.client.priceErr = nsapi.ErrNoPriceFound
	c, rec := s.priceRequest("ASD", "UT")

	s.Require().NoError(s.handler.GetPrice(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("JOURNEY_001", resp.Error.Code)
}

type StationHandlerSuite struct {
	suite.Suite
	db      *database.DB
	client  *fakeNSClient
	handler *StationHandler
	echo    *echo.Echo
}

func TestStationHandlerSuite(t *testing.T) {
	suite.Run(t, new(StationHandlerSuite))
}

func (s *StationHandlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.client = &fakeNSClient{
		stations: []nsapi.Station{
			{Code: "UT", UICCode: "8400621", Name: "Utrecht Centraal", Country: "NL"},
		},
	}

	stationRepo := repositories.NewStationRepository(s.db.DB)
	stations := services.NewStationService(stationRepo, s.client, services.NoopMetrics{})
	s.handler = NewStationHandler(stations)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

func (s *StationHandlerSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *StationHandlerSuite) searchRequest(rawQuery string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stations?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *StationHandlerSuite) TestSearch() {
	c, rec := s.searchRequest("q=utrecht")

	s.Require().NoError(s.handler.Search(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.SearchStationsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("utrecht", resp.Query)
	s.Require().Len(resp.Stations, 1)
	s.Equal("Utrecht Centraal", resp.Stations[0].Name)
}

func (s *StationHandlerSuite) TestSearch_MissingQuery() {
	c, rec := s.searchRequest("")

	s.Require().NoError(s.handler.Search(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("STATION_002", resp.Error.Code)
}

func (s *StationHandlerSuite) TestSearch_BadLimit() {
	c, rec := s.searchRequest("q=utrecht&limit=abc")

	s.Require().NoError(s.handler.Search(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}
