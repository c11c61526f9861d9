package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Station is a cached entry from the NS stations API, keyed by its NS
// station code.
type Station struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code       string    `gorm:"type:varchar(10);not null;uniqueIndex" json:"code"`
	UICCode    string    `gorm:"type:varchar(10)" json:"uic_code"`
	Name       string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Country    string    `gorm:"type:varchar(5)" json:"country"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Station
func (s *Station) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for Station
func (s *Station) TableName() string {
	return "stations"
}

// Journey caches the undiscounted single-fare prices for a station pair as
// returned by the NS price API. Entries older than the freshness window are
// refreshed on the next lookup.
type Journey struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OriginCode       string    `gorm:"type:varchar(10);not null;index:idx_journeys_route" json:"origin_code"`
	DestinationCode  string    `gorm:"type:varchar(10);not null;index:idx_journeys_route" json:"destination_code"`
	FirstClassPrice  int64     `gorm:"not null" json:"first_class_price"`
	SecondClassPrice int64     `gorm:"not null" json:"second_class_price"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;index" json:"updated_at"`
}

// BeforeCreate hook for Journey
func (j *Journey) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for Journey
func (j *Journey) TableName() string {
	return "journeys"
}

// PriceForClass returns the cached fare for the given class. Any class other
// than 1 is treated as second class.
func (j *Journey) PriceForClass(class int) int64 {
	if class == 1 {
		return j.FirstClassPrice
	}
	return j.SecondClassPrice
}
