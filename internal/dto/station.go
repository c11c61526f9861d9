package dto

// StationInfo is one station search result
type StationInfo struct {
	Code      string  `json:"code"`
	UICCode   string  `json:"uic_code,omitempty"`
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchStationsResponse returns the stations matching a search query
type SearchStationsResponse struct {
	Query    string        `json:"query"`
	Stations []StationInfo `json:"stations"`
}
