// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package dayclock maps timestamps to logical day keys. The operational day
// starts at a configurable hour, so a 02:00 submission still belongs to the
// previous evening's cycle. All functions are pure; nothing here depends on
// process state, which keeps day keys stable across restarts.
package dayclock

import "time"

// KeyLayout is the day key wire format, a plain calendar date.
const KeyLayout = "2006-01-02"

// Clock resolves day keys for a fixed day-start hour (0-23).
type Clock struct {
	StartHour int
}

// DayKey returns the calendar-date identifier of the operational day that
// contains t. Timestamps with local hour >= StartHour map to their own
// calendar date; earlier timestamps map to the previous one.
func (c Clock) DayKey(t time.Time) string {
	return t.Add(-time.Duration(c.StartHour) * time.Hour).Format(KeyLayout)
}

// DayWindow returns the half-open interval [start, start+24h) of the
// operational day containing t. start falls on the day key's date at
// StartHour:00:00 in t's location.
func (c Clock) DayWindow(t time.Time) (start, end time.Time) {
	y, m, d := t.Add(-time.Duration(c.StartHour) * time.Hour).Date()
	start = time.Date(y, m, d, c.StartHour, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// PrevDay returns the day key of the calendar day before key. Malformed
// keys return the empty string, which never matches a real day key.
func PrevDay(key string) string {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(KeyLayout)
}

// NextDay returns the day key of the calendar day after key.
func NextDay(key string) string {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(KeyLayout)
}
