package calculator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/util"

	"gonum.org/v1/gonum/floats"
)

// WeightedSeries is one constituent of the portfolio. Weight is a
// fraction, not a percentage
type WeightedSeries struct {
	Symbol string
	Weight float64
	Prices []domain.PricePoint
}

// AlignTimeline returns the ascending days on which every series has a
// price. prices are keyed by day index so lookups during synthesis are
// constant time
func AlignTimeline(series []WeightedSeries) ([]int64, []map[int64]float64) {
	byDay := make([]map[int64]float64, len(series))
	for i, s := range series {
		m := make(map[int64]float64, len(s.Prices))
		for _, p := range s.Prices {
			m[util.DayIndex(p.Date)] = p.AdjClose
		}
		byDay[i] = m
	}
	if len(series) == 0 {
		return []int64{}, byDay
	}

	// walk the smallest set, checking membership in the rest
	smallest := 0
	for i := range byDay {
		if len(byDay[i]) < len(byDay[smallest]) {
			smallest = i
		}
	}

	days := []int64{}
	for day := range byDay[smallest] {
		inAll := true
		for i := range byDay {
			if _, ok := byDay[i][day]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i] < days[j]
	})

	return days, byDay
}

// BuildPortfolioCurve synthesizes the buy-and-hold value of the portfolio
// on each aligned day: sum of weight * (price / price on first day).
// weights are never rebalanced, so they drift with each constituent
func BuildPortfolioCurve(series []WeightedSeries) (*domain.PortfolioCurve, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: cannot build curve with no assets", domain.ErrInvalidWeights)
	}

	days, byDay := AlignTimeline(series)
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: assets share no trading dates", domain.ErrNoCommonDates)
	}

	weights := make([]float64, len(series))
	anchors := make([]float64, len(series))
	for i, s := range series {
		weights[i] = s.Weight
		anchors[i] = byDay[i][days[0]]
		if anchors[i] <= 0 || math.IsNaN(anchors[i]) || math.IsInf(anchors[i], 0) {
			return nil, fmt.Errorf("%w: invalid initial price %v for %s", domain.ErrComputationFailure, anchors[i], s.Symbol)
		}
	}

	dates := make([]time.Time, len(days))
	values := make([]float64, len(days))
	relatives := make([]float64, len(series))
	for d, day := range days {
		for i := range series {
			relatives[i] = byDay[i][day] / anchors[i]
		}
		value := floats.Dot(weights, relatives)
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: invalid portfolio value on %s", domain.ErrComputationFailure, util.FormatDate(util.DateFromDayIndex(day)))
		}
		dates[d] = util.DateFromDayIndex(day)
		values[d] = value
	}

	return &domain.PortfolioCurve{
		Dates:  dates,
		Values: values,
	}, nil
}

// Normalize rescales values so the first one is exactly 1. when the
// weights summed to exactly 1 this is the identity
func Normalize(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return []float64{}, nil
	}
	if values[0] <= 0 {
		return nil, fmt.Errorf("%w: cannot normalize curve starting at %v", domain.ErrComputationFailure, values[0])
	}

	out := make([]float64, len(values))
	copy(out, values)
	floats.Scale(1/values[0], out)
	out[0] = 1
	return out, nil
}
