package services

import (
	"strings"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"
)

// Minute-of-day boundaries for the fare windows. Lower bounds are inclusive,
// upper bounds exclusive.
const (
	morningPeakStart = 6*60 + 35  // 06:35
	morningPeakEnd   = 8*60 + 55  // 08:55
	eveningPeakStart = 16*60 + 5  // 16:05
	eveningPeakEnd   = 18*60 + 25 // 18:25

	weekendFridayStart = 18*60 + 25 // 18:25
	weekendMondayEnd   = 4*60 + 5   // 04:05

	// A journey within five minutes of midnight belongs to the fare window
	// of the calendar day it is conceptually part of.
	midnightSlack = 5
)

type monthDay struct {
	month time.Month
	day   int
}

type timeClassifier struct {
	holidays map[int][]monthDay
	fallback []monthDay
}

// NewTimeClassifier creates a TimeClassifierInterface instance with the
// built-in Dutch public holiday tables.
func NewTimeClassifier() TimeClassifierInterface {
	return &timeClassifier{
		holidays: initHolidays(),
		fallback: initFallbackHolidays(),
	}
}

// initHolidays returns the per-year holiday tables: New Year's Day, Easter,
// King's Day, Ascension Day, Whitsun, Christmas. Years not listed fall back
// to the fixed-date holidays only.
func initHolidays() map[int][]monthDay {
	return map[int][]monthDay{
		2023: {
			{time.January, 1},
			{time.April, 7},
			{time.April, 9},
			{time.April, 10},
			{time.April, 27},
			{time.May, 18},
			{time.May, 28},
			{time.May, 29},
			{time.December, 25},
			{time.December, 26},
		},
		2024: {
			{time.January, 1},
			{time.March, 29},
			{time.March, 31},
			{time.April, 1},
			{time.April, 27},
			{time.May, 9},
			{time.May, 19},
			{time.May, 20},
			{time.December, 25},
			{time.December, 26},
		},
	}
}

func initFallbackHolidays() []monthDay {
	return []monthDay{
		{time.January, 1},
		{time.December, 25},
		{time.December, 26},
	}
}

// Classify determines the time type of a journey from its start timestamp and
// product description. Precedence: HOLIDAY > WEEKEND > PEAK > OFF_PEAK, with
// NONE for anything that is not a rail product.
func (c *timeClassifier) Classify(start time.Time, product string) models.TimeType {
	if !strings.Contains(strings.ToLower(product), "trein") {
		return models.TimeTypeNone
	}

	if c.isHoliday(start) {
		return models.TimeTypeHoliday
	}

	if isWeekend(start) {
		return models.TimeTypeWeekend
	}

	if isPeak(start) {
		return models.TimeTypePeak
	}

	return models.TimeTypeOffPeak
}

// isHoliday checks the calendar day itself, plus the midnight edges: the last
// five minutes before midnight count towards the next day and the first five
// minutes after midnight towards the previous day.
func (c *timeClassifier) isHoliday(t time.Time) bool {
	if c.isHolidayDate(t) {
		return true
	}

	minute := t.Hour()*60 + t.Minute()
	if minute >= 24*60-midnightSlack && c.isHolidayDate(t.AddDate(0, 0, 1)) {
		return true
	}
	if minute < midnightSlack && c.isHolidayDate(t.AddDate(0, 0, -1)) {
		return true
	}

	return false
}

func (c *timeClassifier) isHolidayDate(t time.Time) bool {
	days, ok := c.holidays[t.Year()]
	if !ok {
		days = c.fallback
	}

	for _, d := range days {
		if d.month == t.Month() && d.day == t.Day() {
			return true
		}
	}
	return false
}

// isWeekend reports whether the timestamp falls in the weekend fare window,
// which runs from Friday 18:25 through Monday 04:05.
func isWeekend(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()

	switch t.Weekday() {
	case time.Friday:
		return minute >= weekendFridayStart
	case time.Saturday, time.Sunday:
		return true
	case time.Monday:
		return minute < weekendMondayEnd
	default:
		return false
	}
}

// isPeak reports whether the timestamp falls in a weekday peak window.
func isPeak(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()

	return (minute >= morningPeakStart && minute < morningPeakEnd) ||
		(minute >= eveningPeakStart && minute < eveningPeakEnd)
}
