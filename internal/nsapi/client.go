package nsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the NS API gateway.
	DefaultBaseURL = "https://gateway.apiportal.ns.nl"

	pricesPath   = "/public-prijsinformatie/prices"
	stationsPath = "/reisinformatie-api/api/v2/stations"

	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

	priceOptionRoute = "ROUTE_WITH_INDICATION"

	productTypeSingleFare = "SINGLE_FARE"
	discountTypeNone      = "NONE"
	classTypeFirst        = "FIRST"
	classTypeSecond       = "SECOND"
)

var ErrNoPriceFound = errors.New("no price options found for route")

// Client calls the public NS API. Each endpoint group uses its own
// subscription key.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pricesKey  string
	travelKey  string
}

// NewClient creates an NS API client.
func NewClient(baseURL, pricesKey, travelKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		pricesKey:  pricesKey,
		travelKey:  travelKey,
	}
}

// GetPrice fetches the undiscounted single-fare prices for a station pair.
func (c *Client) GetPrice(ctx context.Context, fromStation, toStation string) (*JourneyPrice, error) {
	params := url.Values{}
	params.Set("fromStation", fromStation)
	params.Set("toStation", toStation)

	var response priceResponse
	if err := c.get(ctx, pricesPath, c.pricesKey, params, &response); err != nil {
		return nil, fmt.Errorf("price lookup failed: %w", err)
	}

	return extractJourneyPrice(response)
}

// extractJourneyPrice picks the single-transporter route option and reads the
// undiscounted single fares from it.
func extractJourneyPrice(response priceResponse) (*JourneyPrice, error) {
	journeyPrice := &JourneyPrice{FirstClassPrice: -1, SecondClassPrice: -1}

	for _, option := range response.PriceOptions {
		if option.Type != priceOptionRoute {
			continue
		}
		if !singleTransporter(option.Trajecten) {
			continue
		}

		for _, p := range option.TotalPrices {
			if p.ProductType != productTypeSingleFare || p.DiscountType != discountTypeNone {
				continue
			}
			switch p.ClassType {
			case classTypeFirst:
				journeyPrice.FirstClassPrice = p.Price
			case classTypeSecond:
				journeyPrice.SecondClassPrice = p.Price
			}
		}
	}

	if journeyPrice.FirstClassPrice < 0 && journeyPrice.SecondClassPrice < 0 {
		return nil, ErrNoPriceFound
	}
	if journeyPrice.FirstClassPrice < 0 {
		journeyPrice.FirstClassPrice = 0
	}
	if journeyPrice.SecondClassPrice < 0 {
		journeyPrice.SecondClassPrice = 0
	}

	return journeyPrice, nil
}

func singleTransporter(trajecten []traject) bool {
	transporters := make(map[string]struct{})
	for _, t := range trajecten {
		transporters[t.Transporter] = struct{}{}
	}
	return len(transporters) == 1
}

// GetStations searches stations by (partial) name.
func (c *Client) GetStations(ctx context.Context, query string, limit int) ([]Station, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("countryCodes", "nl")
	params.Set("limit", strconv.Itoa(limit))

	var response stationsResponse
	if err := c.get(ctx, stationsPath, c.travelKey, params, &response); err != nil {
		return nil, fmt.Errorf("station lookup failed: %w", err)
	}

	stations := make([]Station, 0, len(response.Payload))
	for _, payload := range response.Payload {
		stations = append(stations, Station{
			Code:      payload.Code,
			UICCode:   payload.UICCode,
			Name:      payload.Namen.Lang,
			Country:   payload.Land,
			Latitude:  payload.Lat,
			Longitude: payload.Lng,
		})
	}

	return stations, nil
}

func (c *Client) get(ctx context.Context, path, key string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(subscriptionKeyHeader, key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
