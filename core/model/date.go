package model

import "time"

// DateFormat is the calendar date layout used throughout the report.
const DateFormat = "2006-01-02"

// Date returns the given calendar day at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight strips the time-of-day component, keeping only the calendar day.
func Midnight(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}
