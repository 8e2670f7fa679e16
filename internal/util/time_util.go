package util

import (
	"time"
)

const layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

// ToDate truncates t to midnight of its UTC calendar day
func ToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayIndex is the number of whole UTC days since the unix epoch
func DayIndex(t time.Time) int64 {
	return ToDate(t).Unix() / secondsPerDay
}

func DateFromDayIndex(day int64) time.Time {
	return time.Unix(day*secondsPerDay, 0).UTC()
}

func FormatDate(t time.Time) string {
	return t.Format(layout)
}
