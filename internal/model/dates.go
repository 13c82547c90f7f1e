package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDateKey = errors.New("model: invalid date key")

const dateKeyLayout = "2006-01-02"

type DayOfWeek string

const (
	Sunday    DayOfWeek = "Sun"
	Monday    DayOfWeek = "Mon"
	Tuesday   DayOfWeek = "Tue"
	Wednesday DayOfWeek = "Wed"
	Thursday  DayOfWeek = "Thu"
	Friday    DayOfWeek = "Fri"
	Saturday  DayOfWeek = "Sat"
)

var weekdayTags = [7]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func (d DayOfWeek) IsValid() bool {
	for _, tag := range weekdayTags {
		if d == tag {
			return true
		}
	}
	return false
}

// DateKey formats a moment as its local calendar day, zero-padded
// YYYY-MM-DD. Two moments on the same local day always map to the
// same key regardless of time of day.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey is the inverse of DateKey; the result is midnight
// local time on that day.
func ParseDateKey(key string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return parsed, nil
}

func ValidDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// WeekdayOf maps a moment to its local weekday tag.
func WeekdayOf(t time.Time) DayOfWeek {
	return weekdayTags[int(t.Weekday())]
}

// StartOfDay truncates a moment to midnight local time, for
// date-only comparisons.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
