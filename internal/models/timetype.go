package models

// TimeType classifies when a rail journey took place, which determines
// which subscription discounts apply to it.
type TimeType string

const (
	TimeTypeNone    TimeType = "NONE"
	TimeTypePeak    TimeType = "PEAK"
	TimeTypeOffPeak TimeType = "OFF_PEAK"
	TimeTypeWeekend TimeType = "WEEKEND"
	TimeTypeHoliday TimeType = "HOLIDAY"
)

// AllTimeTypes lists every time type in display order.
var AllTimeTypes = []TimeType{
	TimeTypeNone,
	TimeTypePeak,
	TimeTypeOffPeak,
	TimeTypeWeekend,
	TimeTypeHoliday,
}

// timeTypeNames maps time types to their human-readable names.
var timeTypeNames = map[TimeType]string{
	TimeTypeNone:    "None",
	TimeTypePeak:    "Peak",
	TimeTypeOffPeak: "Off-peak",
	TimeTypeWeekend: "Weekend",
	TimeTypeHoliday: "Holiday",
}

// DisplayName returns the human-readable name for the time type.
func (t TimeType) DisplayName() string {
	if name, ok := timeTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// IsValidTimeType checks if the time type is one of the known values.
func IsValidTimeType(timeType TimeType) bool {
	_, ok := timeTypeNames[timeType]
	return ok
}
