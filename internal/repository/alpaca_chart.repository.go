package repository

import (
	"context"
	"fmt"
	"time"

	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/util"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// alpaca only has bars from 2016 onwards, so max lookbacks get
// clamped to whatever the api returns
func NewAlpacaChartRepository(apiKey, apiSecret, endpoint string) ChartRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return alpacaChartRepositoryHandler{
		MdClient: mdClient,
	}
}

type alpacaChartRepositoryHandler struct {
	MdClient *marketdata.Client
}

func (h alpacaChartRepositoryHandler) GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bars, err := h.MdClient.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.All,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get alpaca bars for %s: %w", symbol, err)
	}

	raw := make([]rawBar, 0, len(bars))
	for _, b := range bars {
		// bars are already adjusted for splits and dividends
		raw = append(raw, rawBar{
			Timestamp: b.Timestamp,
			Close:     b.Close,
			AdjClose:  b.Close,
		})
	}

	prices := pricePointsFromBars(raw)
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w for %s between %s and %s", ErrNoPriceData, symbol, util.FormatDate(start), util.FormatDate(end))
	}

	return prices, nil
}
