package l2_service

import (
	"context"
	"fmt"
	"time"

	"portfoliobacktest/internal/calculator"
	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/logger"
	l1_service "portfoliobacktest/internal/service/l1"
	"portfoliobacktest/internal/util"
)

type PortfolioService interface {
	ComputePortfolioPerformance(ctx context.Context, in ComputePortfolioPerformanceInput) (*domain.PortfolioPerformance, error)
}

type ComputePortfolioPerformanceInput struct {
	// Assets carry percentage weights, e.g. 60 for 60%
	Assets []domain.Asset
	// Lookback defaults to max when empty
	Lookback domain.Lookback
	// Now anchors both the fetch range and the trailing periods.
	// defaults to the current time
	Now time.Time
}

type portfolioServiceHandler struct {
	PriceService l1_service.PriceService
	Periods      []calculator.Period
}

func NewPortfolioService(priceService l1_service.PriceService) PortfolioService {
	return &portfolioServiceHandler{
		PriceService: priceService,
		Periods:      calculator.DefaultPeriods,
	}
}

// ComputePortfolioPerformance fetches every constituent, builds the
// buy-and-hold curve on the dates they share and summarizes it over each
// trailing period. any constituent that cannot be loaded fails the whole
// computation
func (h portfolioServiceHandler) ComputePortfolioPerformance(ctx context.Context, in ComputePortfolioPerformanceInput) (*domain.PortfolioPerformance, error) {
	log := logger.FromContext(ctx)

	if err := domain.ValidateAssets(in.Assets, domain.EngineWeightTolerance); err != nil {
		return nil, err
	}

	lookback := in.Lookback
	if lookback == "" {
		lookback = domain.LookbackMax
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	symbols := make([]string, len(in.Assets))
	for i, a := range in.Assets {
		symbols[i] = domain.NormalizeTicker(a.Ticker)
	}

	endSpan := domain.StartSpan(ctx, "fetch prices")
	results := h.PriceService.FetchMany(ctx, symbols, lookback, now)
	endSpan()

	series := make([]calculator.WeightedSeries, len(in.Assets))
	for i, a := range in.Assets {
		result, ok := results[symbols[i]]
		if !ok {
			return nil, fmt.Errorf("%w: no result for %s", domain.ErrDataUnavailable, symbols[i])
		}
		if result.Err != nil {
			return nil, fmt.Errorf("failed to load prices for %s: %w", symbols[i], result.Err)
		}
		if len(result.Prices) == 0 {
			return nil, fmt.Errorf("%w: no data found for %s", domain.ErrDataUnavailable, symbols[i])
		}
		series[i] = calculator.WeightedSeries{
			Symbol: symbols[i],
			Weight: a.Weight / 100,
			Prices: result.Prices,
		}
	}

	endSpan = domain.StartSpan(ctx, "build curve")
	curve, err := calculator.BuildPortfolioCurve(series)
	endSpan()
	if err != nil {
		return nil, err
	}

	normalized, err := calculator.Normalize(curve.Values)
	if err != nil {
		return nil, err
	}

	endSpan = domain.StartSpan(ctx, "calculate stats")
	stats, err := calculator.CalculatePeriodStats(curve.Dates, curve.Values, now, h.Periods)
	endSpan()
	if err != nil {
		return nil, err
	}

	log.Infow(
		"computed portfolio performance",
		"assets", len(in.Assets),
		"lookback", lookback,
		"points", len(curve.Dates),
		"from", util.FormatDate(curve.Dates[0]),
		"to", util.FormatDate(curve.Dates[len(curve.Dates)-1]),
		"periods", len(stats),
	)

	return &domain.PortfolioPerformance{
		Dates:            curve.Dates,
		PortfolioValues:  curve.Values,
		NormalizedValues: normalized,
		Stats:            stats,
	}, nil
}
