package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayIndex(t *testing.T) {
	t.Run("same day different times", func(t *testing.T) {
		morning := time.Date(2021, 3, 4, 1, 0, 0, 0, time.UTC)
		evening := time.Date(2021, 3, 4, 23, 59, 0, 0, time.UTC)
		require.Equal(t, DayIndex(morning), DayIndex(evening))
	})

	t.Run("round trip", func(t *testing.T) {
		d := NewDate(2020, 2, 29)
		require.Equal(t, d, DateFromDayIndex(DayIndex(d)))
		require.Equal(t, DayIndex(d)+1, DayIndex(NewDate(2020, 3, 1)))
	})

	t.Run("non utc input", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*60*60)
		// 2021-03-04 22:00 EST is 2021-03-05 03:00 UTC
		in := time.Date(2021, 3, 4, 22, 0, 0, 0, loc)
		require.Equal(t, NewDate(2021, 3, 5), ToDate(in))
	})
}
