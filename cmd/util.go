package cmd

import (
	"fmt"
	"os"
	"strings"

	"portfoliobacktest/api"
	integration_tests "portfoliobacktest/integration-tests"
	"portfoliobacktest/internal"
	"portfoliobacktest/internal/repository"
	l1_service "portfoliobacktest/internal/service/l1"
	l2_service "portfoliobacktest/internal/service/l2"
	"portfoliobacktest/internal/util"
)

func NewChartRepository(cfg util.Config) (repository.ChartRepository, error) {
	// tests run against the embedded sample prices, never a live source
	if strings.EqualFold(os.Getenv("PORTFOLIO_ENV"), "test") {
		return integration_tests.NewMockChartRepositoryForTests(), nil
	}

	switch cfg.QuoteSource {
	case util.QuoteSourceYahoo:
		return repository.NewYahooChartRepository(), nil
	case util.QuoteSourceAlpaca:
		return repository.NewAlpacaChartRepository(cfg.Alpaca.ApiKey, cfg.Alpaca.ApiSecret, cfg.Alpaca.Endpoint), nil
	}
	return nil, fmt.Errorf("unknown quote source %q", cfg.QuoteSource)
}

func InitializeDependencies(cfg util.Config) (*api.ApiHandler, error) {
	chartRepository, err := NewChartRepository(cfg)
	if err != nil {
		return nil, err
	}

	priceService := l1_service.NewPriceService(
		chartRepository,
		l1_service.FetchOptions{
			Timeout:        cfg.Fetch.Timeout(),
			MaxRetries:     cfg.Fetch.MaxRetries,
			InitialBackoff: cfg.Fetch.InitialBackoff(),
			Concurrency:    cfg.Fetch.Concurrency,
		},
		cfg.Fetch.RequestsPerSecond,
	)
	portfolioService := l2_service.NewPortfolioService(priceService)

	apiHandler := &api.ApiHandler{
		PortfolioService: portfolioService,
		BenchmarkHandler: internal.BenchmarkHandler{
			PriceService: priceService,
		},
	}

	return apiHandler, nil
}
