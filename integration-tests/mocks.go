package integration_tests

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"sync"
	"time"

	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/repository"
	"portfoliobacktest/internal/util"

	"github.com/gocarina/gocsv"
)

//go:embed sample_prices.csv
var samplePricesCsv []byte

type SamplePriceRow struct {
	Date   string  `csv:"date"`
	Symbol string  `csv:"symbol"`
	Price  float64 `csv:"price"`
}

// LoadSamplePrices returns the fixture series keyed by symbol, in
// ascending date order
func LoadSamplePrices() (map[string][]domain.PricePoint, error) {
	rows := []SamplePriceRow{}
	if err := gocsv.UnmarshalBytes(samplePricesCsv, &rows); err != nil {
		return nil, fmt.Errorf("failed to read sample prices: %w", err)
	}

	out := map[string][]domain.PricePoint{}
	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			return nil, err
		}
		out[row.Symbol] = append(out[row.Symbol], domain.PricePoint{
			Date:     date,
			AdjClose: row.Price,
		})
	}
	for _, prices := range out {
		sort.Slice(prices, func(i, j int) bool {
			return prices[i].Date.Before(prices[j].Date)
		})
	}

	return out, nil
}

// NewMockChartRepositoryForTests serves the embedded sample prices
// instead of calling a quote source
func NewMockChartRepositoryForTests() repository.ChartRepository {
	return &mockChartRepositoryForTestsHandler{}
}

type mockChartRepositoryForTestsHandler struct {
	once   sync.Once
	prices map[string][]domain.PricePoint
	err    error
}

func (m *mockChartRepositoryForTestsHandler) GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.once.Do(func() {
		m.prices, m.err = LoadSamplePrices()
	})
	if m.err != nil {
		return nil, m.err
	}

	out := []domain.PricePoint{}
	for _, p := range m.prices[symbol] {
		if util.DayIndex(p.Date) >= util.DayIndex(start) && util.DateLte(p.Date, end) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w for %s between %s and %s", repository.ErrNoPriceData, symbol, util.FormatDate(start), util.FormatDate(end))
	}

	return out, nil
}
