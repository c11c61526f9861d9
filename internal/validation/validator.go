package validation

import (
	"reflect"
	"strings"

	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("subscription_type", validateSubscriptionType)
	_ = v.RegisterValidation("fare_class", validateFareClass)
	_ = v.RegisterValidation("station_code", validateStationCode)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateSubscriptionType validates that a subscription type is one of the
// known NS Flex variants
func validateSubscriptionType(fl validator.FieldLevel) bool {
	subscription := models.SubscriptionType(fl.Field().String())
	return models.IsValidSubscriptionType(subscription)
}

// validateFareClass validates that a fare class is 1 or 2
func validateFareClass(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		class := fl.Field().Int()
		return class == 1 || class == 2
	default:
		return false
	}
}

// validateStationCode validates that a station code is a short alphabetic NS code
func validateStationCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) < 2 || len(code) > 10 {
		return false
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
