package domain

import (
	"fmt"
	"strings"
	"time"
)

// Lookback is how much price history to request from the quote source
type Lookback string

const (
	Lookback1Y  Lookback = "1y"
	Lookback3Y  Lookback = "3y"
	Lookback5Y  Lookback = "5y"
	Lookback10Y Lookback = "10y"
	LookbackMax Lookback = "max"
)

var lookbackYears = map[Lookback]int{
	Lookback1Y:  1,
	Lookback3Y:  3,
	Lookback5Y:  5,
	Lookback10Y: 10,
	LookbackMax: 0,
}

// NewLookback parses a lookback string. empty input means max
func NewLookback(s string) (Lookback, error) {
	if strings.TrimSpace(s) == "" {
		return LookbackMax, nil
	}
	l := Lookback(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := lookbackYears[l]; !ok {
		return "", fmt.Errorf("unknown lookback %q: expected one of 1y, 3y, 5y, 10y, max", s)
	}
	return l, nil
}

// StartDate is now minus the lookback years, or the unix epoch for max
func (l Lookback) StartDate(now time.Time) time.Time {
	years, ok := lookbackYears[l]
	if !ok || years == 0 {
		return time.Unix(0, 0).UTC()
	}
	return now.AddDate(-years, 0, 0)
}
