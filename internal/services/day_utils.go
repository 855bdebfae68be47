package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/paaga/internal/models"
)

const calendarDateLayout = "2006-01-02"

var errCalendarDateInvalid = errors.New("calendar date invalid")

// DateOnly drops the time of day using the value's own calendar fields and
// returns that calendar day as UTC midnight.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today is the calendar day that now falls on in location.
func Today(now time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return DateOnly(now.In(location))
}

// DaysBetween counts whole calendar days from from to to; negative when to is earlier.
func DaysBetween(from time.Time, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)) / (24 * time.Hour))
}

// NormalizeDay maps a calendar date to its 1-based day number relative to
// referenceStart. The result is not clamped.
func NormalizeDay(date time.Time, referenceStart time.Time) int {
	return DaysBetween(referenceStart, date) + 1
}

func WindowEnd(startDate time.Time) time.Time {
	return DateOnly(startDate).AddDate(0, 0, models.ChallengeLengthDays-1)
}

func DateForDay(startDate time.Time, dayNumber int) time.Time {
	return DateOnly(startDate).AddDate(0, 0, dayNumber-1)
}

func FormatCalendarDate(value time.Time) string {
	return DateOnly(value).Format(calendarDateLayout)
}

// ParseCalendarDate accepts YYYY-MM-DD or an RFC 3339 timestamp. Timestamps
// are reduced to the calendar day they fall on in location.
func ParseCalendarDate(raw string, location *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errCalendarDateInvalid
	}
	if parsed, err := time.Parse(calendarDateLayout, value); err == nil {
		return DateOnly(parsed), nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, errCalendarDateInvalid
	}
	return Today(parsed, location), nil
}

func IsValidDayNumber(dayNumber int) bool {
	return dayNumber >= 1 && dayNumber <= models.ChallengeLengthDays
}
