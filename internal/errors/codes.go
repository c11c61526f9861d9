package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Import error codes (IMPORT_*)
const (
	ImportNotFound       ErrorCode = "IMPORT_001"
	ImportFileMissing    ErrorCode = "IMPORT_002"
	ImportFileUnreadable ErrorCode = "IMPORT_003"
	ImportEmptyFile      ErrorCode = "IMPORT_004"
	ImportNoTransactions ErrorCode = "IMPORT_005"
)

// Comparison error codes (COMPARISON_*)
const (
	ComparisonInvalidSubscription ErrorCode = "COMPARISON_001"
	ComparisonInvalidClass        ErrorCode = "COMPARISON_002"
	ComparisonInvalidPeriod       ErrorCode = "COMPARISON_003"
	ComparisonEmptyPeriod         ErrorCode = "COMPARISON_004"
)

// Station error codes (STATION_*)
const (
	StationNotFound     ErrorCode = "STATION_001"
	StationMissingQuery ErrorCode = "STATION_002"
)

// Journey error codes (JOURNEY_*)
const (
	JourneyPriceNotFound  ErrorCode = "JOURNEY_001"
	JourneyMissingStation ErrorCode = "JOURNEY_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemUpstreamError      ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// Import errors
	ImportNotFound:       "Import not found",
	ImportFileMissing:    "No travel-history file was uploaded",
	ImportFileUnreadable: "Uploaded file could not be read",
	ImportEmptyFile:      "Uploaded file contains no rows",
	ImportNoTransactions: "No transactions in uploaded files",

	// Comparison errors
	ComparisonInvalidSubscription: "Unknown subscription type",
	ComparisonInvalidClass:        "Fare class must be 1 or 2",
	ComparisonInvalidPeriod:       "Period end precedes period start",
	ComparisonEmptyPeriod:         "Nothing to compare: no transactions and no period",

	// Station errors
	StationNotFound:     "Station not found",
	StationMissingQuery: "Search query is required",

	// Journey errors
	JourneyPriceNotFound:  "Could not find any price options for route",
	JourneyMissingStation: "Origin and destination stations are required",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemUpstreamError:      "Upstream NS API request failed",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
