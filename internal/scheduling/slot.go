package scheduling

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// referenceHour keeps weekday computation away from DST and timezone boundaries.
	referenceHour = 12

	minutesPerHour = 60
	hoursPerDay    = 24
)

// slotOffsets are the minute marks within an hour where slots start. The 5 minute lead
// on each half hour is the cooldown between adjacent sessions.
var slotOffsets = [...]int{5, 35}

// Duration is a session length in minutes.
type Duration int

const (
	DurationShort Duration = 25
	DurationLong  Duration = 55
)

// Valid reports whether d is one of the bookable session lengths.
func (d Duration) Valid() bool {
	return d == DurationShort || d == DurationLong
}

// Date is a naive calendar date formatted as DateLayout.
type Date string

// ParseDate validates value against DateLayout.
func ParseDate(value string) (Date, error) {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return "", newValidationError("date", "must be formatted as YYYY-MM-DD")
	}

	return Date(value), nil
}

// Weekday returns the day of week of d, computed at noon UTC.
func (d Date) Weekday() (time.Weekday, bool) {
	t, ok := d.noon()
	if !ok {
		return time.Sunday, false
	}

	return t.Weekday(), true
}

// AddDays returns the date n days after d. Invalid dates are returned unchanged.
func (d Date) AddDays(n int) Date {
	t, ok := d.noon()
	if !ok {
		return d
	}

	return Date(t.AddDate(0, 0, n).Format(DateLayout))
}

func (d Date) String() string {
	return string(d)
}

func (d Date) noon() (time.Time, bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(t.Year(), t.Month(), t.Day(), referenceHour, 0, 0, 0, time.UTC), true
}

// Slot is a candidate bookable interval. Start and End are "HH:MM".
type Slot struct {
	Date     Date     `json:"date"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Duration Duration `json:"duration"`
	Busy     bool     `json:"busy"`
}

// Generate returns the chronological candidate slots of policy on date for duration.
// Every call recomputes the sequence; all slots come back free.
func Generate(policy Policy, date Date, duration Duration) []Slot {
	if !duration.Valid() {
		return []Slot{}
	}

	weekday, ok := date.Weekday()
	if !ok || !policy.IsActive(weekday) {
		return []Slot{}
	}

	if policy.StartHour >= policy.EndHour {
		return []Slot{}
	}

	slots := make([]Slot, 0, (policy.EndHour-policy.StartHour)*len(slotOffsets))

	for hour := policy.StartHour; hour < policy.EndHour; hour++ {
		for _, offset := range slotOffsets {
			start := hour*minutesPerHour + offset

			slots = append(slots, Slot{
				Date:     date,
				Start:    clock(start),
				End:      clock(start + int(duration)),
				Duration: duration,
			})
		}
	}

	return slots
}

// clock formats minutes since midnight as "HH:MM", wrapping past midnight.
func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", (minutes/minutesPerHour)%hoursPerDay, minutes%minutesPerHour)
}
