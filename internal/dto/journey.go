package dto

import "time"

// JourneyPriceRequest identifies a station pair by NS station code
type JourneyPriceRequest struct {
	From string `query:"from" validate:"required,station_code"`
	To   string `query:"to" validate:"required,station_code"`
}

// JourneyPriceResponse returns the undiscounted single-fare prices for a
// station pair in euro cents
type JourneyPriceResponse struct {
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	FirstClassPrice  int64     `json:"first_class_price"`
	SecondClassPrice int64     `json:"second_class_price"`
	UpdatedAt        time.Time `json:"updated_at"`
}
