package nsapi

// JourneyPrice holds the undiscounted single-fare prices for a station pair,
// in euro cents.
type JourneyPrice struct {
	FirstClassPrice  int64
	SecondClassPrice int64
}

// Station is a station record as returned by the NS travel information API.
type Station struct {
	Code      string
	UICCode   string
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Wire types for the price endpoint.

type priceResponse struct {
	PriceOptions []priceOption `json:"priceOptions"`
}

type priceOption struct {
	Type            string    `json:"type"`
	TariefEenheden  int       `json:"tariefEenheden"`
	RouteIndication string    `json:"routeIndication"`
	TotalPrices     []price   `json:"totalPrices"`
	Trajecten       []traject `json:"trajecten"`
}

type price struct {
	ClassType    string `json:"classType"`
	DiscountType string `json:"discountType"`
	ProductType  string `json:"productType"`
	Price        int64  `json:"price"`
}

type traject struct {
	Transporter string  `json:"transporter"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Prices      []price `json:"prices"`
}

// Wire types for the stations endpoint.

type stationsResponse struct {
	Payload []stationPayload `json:"payload"`
}

type stationPayload struct {
	UICCode string       `json:"UICCode"`
	Code    string       `json:"code"`
	Land    string       `json:"land"`
	Lat     float64      `json:"lat"`
	Lng     float64      `json:"lng"`
	Namen   stationNames `json:"namen"`
}

type stationNames struct {
	Lang   string `json:"lang"`
	Middel string `json:"middel"`
	Kort   string `json:"kort"`
}
