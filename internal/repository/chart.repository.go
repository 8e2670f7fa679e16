package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/util"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// ErrNoPriceData means the source answered but has nothing for the
// symbol in the requested range. retrying will not help
var ErrNoPriceData = errors.New("no price data")

// ChartRepository loads daily adjusted closes for a single symbol from
// an upstream quote source
type ChartRepository interface {
	GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error)
}

func NewYahooChartRepository() ChartRepository {
	return yahooChartRepositoryHandler{}
}

type yahooChartRepositoryHandler struct{}

// rawBar is a single upstream bar before cleaning. a zero close
// means the source had no close for that day
type rawBar struct {
	Timestamp time.Time
	Close     float64
	AdjClose  float64
}

func (h yahooChartRepositoryHandler) GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	params.Context = &ctx
	iter := chart.Get(params)

	bars := []rawBar{}
	for iter.Next() {
		bar := iter.Bar()
		bars = append(bars, rawBar{
			Timestamp: time.Unix(int64(bar.Timestamp), 0),
			Close:     bar.Close.InexactFloat64(),
			AdjClose:  bar.AdjClose.InexactFloat64(),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	prices := pricePointsFromBars(bars)
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w for %s between %s and %s", ErrNoPriceData, symbol, util.FormatDate(start), util.FormatDate(end))
	}

	return prices, nil
}

// pricePointsFromBars drops bars without a close, falls back to the
// raw close when the adjusted close is missing, and returns one point
// per UTC day in ascending order. if a day shows up twice the later
// bar wins
func pricePointsFromBars(bars []rawBar) []domain.PricePoint {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})

	out := []domain.PricePoint{}
	for _, b := range bars {
		if b.Close <= 0 {
			continue
		}
		adjClose := b.AdjClose
		if adjClose <= 0 {
			adjClose = b.Close
		}
		p := domain.PricePoint{
			Date:     util.ToDate(b.Timestamp),
			AdjClose: adjClose,
		}
		if len(out) > 0 && out[len(out)-1].Date.Equal(p.Date) {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}

	return out
}
