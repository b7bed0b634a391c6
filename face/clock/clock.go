// Package clock turns wall-clock time into the values the face displays.
package clock

import (
	"fmt"
	"time"
)

// DayKey identifies a calendar day. It only supports equality: keys jump at
// the turn of the year.
func DayKey(year, yday int) int {
	return year*1000 + yday
}

// DisplayHour converts a 0..23 hour to the shown hour. In 12-hour mode
// midnight and noon both show 12.
func DisplayHour(hour int, is24h bool) int {
	if is24h {
		return hour
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return h
}

// LeadingDigit reports whether the hour tens digit is shown when zero.
func LeadingDigit(is24h bool) bool { return is24h }

// FormatTime renders "HH:MM" in 24-hour mode and "H:MM" in 12-hour mode.
func FormatTime(hour, minute int, is24h bool) string {
	h := DisplayHour(hour, is24h)
	if LeadingDigit(is24h) {
		return fmt.Sprintf("%02d:%02d", h, minute)
	}
	return fmt.Sprintf("%d:%02d", h, minute)
}

// FormatDate renders the month name and a space-padded day, e.g. "January  5".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %2d", t.Month(), t.Day())
}

// FormatWeekday renders the full weekday name.
func FormatWeekday(t time.Time) string {
	return t.Weekday().String()
}

// Detector remembers the last observed day and its formatted strings.
type Detector struct {
	key     int
	valid   bool
	date    string
	weekday string
	changes int
}

// Observe records t and reports whether its day differs from the last one.
// Date strings are regenerated only on a change.
func (d *Detector) Observe(t time.Time) bool {
	key := DayKey(t.Year(), t.YearDay()-1)
	if d.valid && key == d.key {
		return false
	}
	d.key, d.valid = key, true
	d.date = FormatDate(t)
	d.weekday = FormatWeekday(t)
	d.changes++
	return true
}

// Reset forgets the last day so the next Observe reports a change.
func (d *Detector) Reset() { d.valid = false }

func (d *Detector) Date() string    { return d.date }
func (d *Detector) Weekday() string { return d.weekday }

// Changes counts how many times the date strings were regenerated.
func (d *Detector) Changes() int { return d.changes }
