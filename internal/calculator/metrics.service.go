package calculator

import (
	"fmt"
	"math"
	"time"

	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/util"

	"github.com/montanaflynn/stats"
)

const (
	tradingDaysPerYear = 252
	daysPerYear        = 365.25
	// a window needs more than this many points to be reported
	minWindowPoints = 10
)

type Period struct {
	Name string
	// Years is zero for the full range
	Years int
}

var DefaultPeriods = []Period{
	{Name: "1 Year", Years: 1},
	{Name: "3 Years", Years: 3},
	{Name: "5 Years", Years: 5},
	{Name: "10 Years", Years: 10},
	{Name: "Max", Years: 0},
}

// CalculatePeriodStats evaluates each trailing period against the
// suffix of the curve that starts on or after now minus the period.
// periods without enough points are left out rather than erroring
func CalculatePeriodStats(dates []time.Time, values []float64, now time.Time, periods []Period) ([]domain.PeriodStats, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("%w: got %d dates but %d values", domain.ErrComputationFailure, len(dates), len(values))
	}

	out := []domain.PeriodStats{}
	for _, period := range periods {
		startIndex := windowStartIndex(dates, period, now)
		if startIndex >= len(dates)-minWindowPoints {
			continue
		}

		periodStats, err := calculateWindowStats(dates[startIndex:], values[startIndex:])
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s stats: %w", period.Name, err)
		}
		periodStats.Period = period.Name
		out = append(out, *periodStats)
	}

	return out, nil
}

// windowStartIndex finds the first date on or after the period cutoff.
// the cutoff is a calendar day so the time of day of now is ignored.
// if no date qualifies, the last index is returned, which the caller
// treats as too short
func windowStartIndex(dates []time.Time, period Period, now time.Time) int {
	if period.Years == 0 {
		return 0
	}
	cutoff := util.DayIndex(now.AddDate(-period.Years, 0, 0))
	for i, d := range dates {
		if util.DayIndex(d) >= cutoff {
			return i
		}
	}
	return len(dates) - 1
}

func calculateWindowStats(dates []time.Time, values []float64) (*domain.PeriodStats, error) {
	startValue := values[0]
	endValue := values[len(values)-1]
	if startValue <= 0 {
		return nil, fmt.Errorf("%w: window starts at non-positive value %v", domain.ErrComputationFailure, startValue)
	}

	totalReturn := (endValue/startValue - 1) * 100

	yearFraction := dates[len(dates)-1].Sub(dates[0]).Hours() / 24 / daysPerYear
	if yearFraction <= 0 {
		return nil, fmt.Errorf("%w: window from %s to %s has no elapsed time", domain.ErrComputationFailure, util.FormatDate(dates[0]), util.FormatDate(dates[len(dates)-1]))
	}
	cagr := (math.Pow(endValue/startValue, 1/yearFraction) - 1) * 100

	returns := dailyReturns(values)
	stdev, err := stats.StandardDeviationPopulation(returns)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to calculate stdev: %w", domain.ErrComputationFailure, err)
	}
	volatility := stdev * math.Sqrt(tradingDaysPerYear) * 100

	// cagr over annualized vol with a zero risk-free rate. this is not
	// the textbook daily-return sharpe, and a flat curve reports 0
	sharpeRatio := 0.0
	if volatility != 0 {
		sharpeRatio = cagr / volatility
	}

	out := &domain.PeriodStats{
		TotalReturn: totalReturn,
		Cagr:        cagr,
		Volatility:  volatility,
		SharpeRatio: sharpeRatio,
		MaxDrawdown: maxDrawdown(values) * 100,
	}
	for _, v := range []float64{out.TotalReturn, out.Cagr, out.Volatility, out.SharpeRatio, out.MaxDrawdown} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite statistic over %s to %s", domain.ErrComputationFailure, util.FormatDate(dates[0]), util.FormatDate(dates[len(dates)-1]))
		}
	}

	return out, nil
}

func dailyReturns(values []float64) []float64 {
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		returns = append(returns, values[i]/values[i-1]-1)
	}
	return returns
}

// maxDrawdown is the largest peak-to-trough decline as a fraction of
// the running peak. the first value is the initial peak
func maxDrawdown(values []float64) float64 {
	out := 0.0
	peak := values[0]
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if dd := (peak - v) / peak; dd > out {
			out = dd
		}
	}
	return out
}
