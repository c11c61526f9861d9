package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType categorizes a travel-history transaction by the service
// that was used. Rows whose type cannot be derived are rejected during
// normalization.
type TransactionType string

const (
	TransactionTypeBikeRental   TransactionType = "BIKE_RENTAL"
	TransactionTypeBikeParking  TransactionType = "BIKE_PARKING"
	TransactionTypeBusMetroTram TransactionType = "BUS_METRO_TRAM"
	TransactionTypeSupplement   TransactionType = "SUPPLEMENT"
	TransactionTypeTrain        TransactionType = "TRAIN"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidTimeType        = errors.New("invalid time type")
)

// transactionTypeNames maps transaction types to their human-readable names.
var transactionTypeNames = map[TransactionType]string{
	TransactionTypeBikeRental:   "Bike rental",
	TransactionTypeBikeParking:  "Bike parking",
	TransactionTypeBusMetroTram: "Bus, metro and tram",
	TransactionTypeSupplement:   "Supplement",
	TransactionTypeTrain:        "Train",
}

// DisplayName returns the human-readable name for the transaction type.
func (t TransactionType) DisplayName() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// IsValidTransactionType checks if the transaction type is one of the known values.
func IsValidTransactionType(transactionType TransactionType) bool {
	_, ok := transactionTypeNames[transactionType]
	return ok
}

// Transaction is a normalized travel-history record. It is created once by
// the normalizer and never mutated afterwards; all monetary amounts are in
// integer euro cents.
type Transaction struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ImportID uuid.UUID `gorm:"type:uuid;not null;index" json:"import_id"`

	Date  string    `gorm:"type:varchar(10);not null" json:"date"`
	Start time.Time `gorm:"not null;index" json:"start"`
	End   time.Time `gorm:"not null" json:"end"`

	Type     TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	TimeType TimeType        `gorm:"type:varchar(10);not null" json:"time_type"`

	Debit  int64 `gorm:"not null" json:"debit"`
	Credit int64 `gorm:"not null" json:"credit"`
	Total  int64 `gorm:"not null" json:"total"`

	Class             int    `gorm:"not null" json:"class"`
	Product           string `gorm:"type:varchar(255)" json:"product"`
	PrivateOrBusiness string `gorm:"type:varchar(50)" json:"private_or_business"`
	Departure         string `gorm:"type:varchar(255)" json:"departure"`
	Destination       string `gorm:"type:varchar(255)" json:"destination"`

	// RowIndex is the position of the source row in the uploaded file,
	// used as the stable tie-breaker when sorting by start time.
	RowIndex int `gorm:"not null" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}
	if !IsValidTimeType(t.TimeType) {
		return ErrInvalidTimeType
	}
	return nil
}

// IsTrain reports whether the transaction is a rail journey, the only kind
// that carries peak/off-peak pricing implications.
func (t *Transaction) IsTrain() bool {
	return t.Type == TransactionTypeTrain
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// Import groups the transactions that came from a single uploaded
// travel-history file.
type Import struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FileName  string    `gorm:"type:varchar(255);not null" json:"file_name"`
	RowCount  int       `gorm:"not null" json:"row_count"`
	Rejected  int       `gorm:"not null" json:"rejected"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Transactions []Transaction `gorm:"foreignKey:ImportID" json:"-"`
}

// BeforeCreate hook for Import
func (i *Import) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	return nil
}

// TableName returns the table name for Import
func (i *Import) TableName() string {
	return "imports"
}
