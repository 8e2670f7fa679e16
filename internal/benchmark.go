package internal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"portfoliobacktest/internal/domain"
	l1_service "portfoliobacktest/internal/service/l1"
	"portfoliobacktest/internal/util"

	"github.com/shopspring/decimal"
)

type BenchmarkHandler struct {
	PriceService l1_service.PriceService
}

// GetIntraPeriodChange get historic prices for an asset
// and converts it to % change from start
func (h BenchmarkHandler) GetIntraPeriodChange(
	ctx context.Context,
	symbol string,
	start,
	end time.Time,
	granularity time.Duration,
) (map[time.Time]float64, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s", domain.ErrInvalidAssets, util.FormatDate(end), util.FormatDate(start))
	}
	prices, err := h.PriceService.FetchRange(
		ctx,
		domain.NormalizeTicker(symbol),
		start,
		end,
	)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no prices found for symbol %s between %s and %s", domain.ErrDataUnavailable, symbol, util.FormatDate(start), util.FormatDate(end))
	}
	return intraPeriodChangeIterator(prices, end, granularity)
}

// intraPeriodChangeIterator samples the series every granularity,
// snapping forward to the next trading day when a target falls on a gap
func intraPeriodChangeIterator(
	prices []domain.PricePoint,
	end time.Time,
	granularity time.Duration,
) (map[time.Time]float64, error) {
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Date.Before(prices[j].Date)
	})

	first := decimal.NewFromFloat(prices[0].AdjClose)
	if !first.IsPositive() {
		return nil, fmt.Errorf("%w: first price %v is not positive", domain.ErrComputationFailure, prices[0].AdjClose)
	}

	out := map[time.Time]float64{
		prices[0].Date: 0,
	}
	nextTarget := prices[0].Date.Add(granularity)
	for i := 1; i < len(prices) && util.DateLte(prices[i].Date, end); i++ {
		day := util.FormatDate(prices[i].Date)
		for util.FormatDate(nextTarget) < day {
			nextTarget = nextTarget.Add(24 * time.Hour)
		}
		if day == util.FormatDate(nextTarget) {
			price := decimal.NewFromFloat(prices[i].AdjClose)
			out[nextTarget] = decimal.NewFromInt(100).Mul(price.Sub(first)).Div(first).InexactFloat64()
			nextTarget = nextTarget.Add(granularity)
		}
	}

	return out, nil
}
