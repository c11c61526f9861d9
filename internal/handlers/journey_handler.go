package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/NixySoftware/ns-flex-insights/internal/dto"
	"github.com/NixySoftware/ns-flex-insights/internal/errors"
	"github.com/NixySoftware/ns-flex-insights/internal/nsapi"
	"github.com/NixySoftware/ns-flex-insights/internal/services"

	"github.com/labstack/echo/v4"
)

// JourneyHandler handles journey price lookups
type JourneyHandler struct {
	journeys services.JourneyServiceInterface
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(journeys services.JourneyServiceInterface) *JourneyHandler {
	return &JourneyHandler{journeys: journeys}
}

// GetPrice looks up the single-fare prices for a station pair
// @Summary Get journey price
// @Description Return the undiscounted single-fare prices for a station pair, served from the local cache while fresh and refreshed from the NS price API otherwise
// @Tags Journeys
// @Produce json
// @Param from query string true "Origin station code"
// @Param to query string true "Destination station code"
// @Success 200 {object} dto.JourneyPriceResponse "Journey prices in euro cents"
// @Failure 400 {object} errors.ErrorResponse "JOURNEY_002 - Missing origin or destination"
// @Failure 404 {object} errors.ErrorResponse "JOURNEY_001 - No price found for route"
// @Failure 502 {object} errors.ErrorResponse "SYSTEM_005 - NS API request failed"
// @Router /journeys/price [get]
func (h *JourneyHandler) GetPrice(c echo.Context) error {
	var req dto.JourneyPriceRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.JourneyMissingStation)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	journey, err := h.journeys.LookupPrice(c.Request().Context(), req.From, req.To)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrMissingStation):
			return SendError(c, errors.JourneyMissingStation)
		case stderrors.Is(err, nsapi.ErrNoPriceFound):
			return SendError(c, errors.JourneyPriceNotFound)
		default:
			return SendError(c, errors.SystemUpstreamError, errors.WithDetails(err.Error()))
		}
	}

	return c.JSON(http.StatusOK, dto.JourneyPriceResponse{
		Origin:           journey.OriginCode,
		Destination:      journey.DestinationCode,
		FirstClassPrice:  journey.FirstClassPrice,
		SecondClassPrice: journey.SecondClassPrice,
		UpdatedAt:        journey.UpdatedAt,
	})
}
