package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/NixySoftware/ns-flex-insights/internal/dto"
	"github.com/NixySoftware/ns-flex-insights/internal/errors"
	"github.com/NixySoftware/ns-flex-insights/internal/models"
	"github.com/NixySoftware/ns-flex-insights/internal/services"

	"github.com/labstack/echo/v4"
)

const maxStationResults = 50

// StationHandler handles station search requests
type StationHandler struct {
	stations services.StationServiceInterface
}

// NewStationHandler creates a new station handler
func NewStationHandler(stations services.StationServiceInterface) *StationHandler {
	return &StationHandler{stations: stations}
}

// Search searches stations by name
// @Summary Search stations
// @Description Search NS stations by (partial) name, backed by the local cache and the NS stations API
// @Tags Stations
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum number of results" default(10)
// @Success 200 {object} dto.SearchStationsResponse "Matching stations"
// @Failure 400 {object} errors.ErrorResponse "STATION_002 - Missing search query"
// @Failure 502 {object} errors.ErrorResponse "SYSTEM_005 - NS API request failed"
// @Router /stations [get]
func (h *StationHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return SendError(c, errors.StationMissingQuery)
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("limit must be a positive integer"))
		}
		limit = parsed
	}
	if limit > maxStationResults {
		limit = maxStationResults
	}

	stations, err := h.stations.Search(c.Request().Context(), query, limit)
	if err != nil {
		if err == services.ErrEmptyQuery {
			return SendError(c, errors.StationMissingQuery)
		}
		return SendError(c, errors.SystemUpstreamError, errors.WithDetails(err.Error()))
	}

	return c.JSON(http.StatusOK, dto.SearchStationsResponse{
		Query:    query,
		Stations: stationInfos(stations),
	})
}

func stationInfos(stations []models.Station) []dto.StationInfo {
	infos := make([]dto.StationInfo, 0, len(stations))
	for _, s := range stations {
		infos = append(infos, dto.StationInfo{
			Code:      s.Code,
			UICCode:   s.UICCode,
			Name:      s.Name,
			Country:   s.Country,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		})
	}
	return infos
}
