package api

import (
	"fmt"
	"net/http"
	"time"

	"portfoliobacktest/internal/domain"
	l2_service "portfoliobacktest/internal/service/l2"
	"portfoliobacktest/internal/util"

	"github.com/gin-gonic/gin"
)

type CalculatePortfolioRequest struct {
	Assets []domain.Asset `json:"assets"`
	// Lookback is one of 1y, 3y, 5y, 10y, max. defaults to max
	Lookback string `json:"lookback"`
}

type CalculatePortfolioResponse struct {
	Performance PerformanceResponse `json:"performance"`
}

type PerformanceResponse struct {
	Dates            []string             `json:"dates"`
	PortfolioValues  []float64            `json:"portfolioValues"`
	NormalizedValues []float64            `json:"normalizedValues"`
	Stats            []domain.PeriodStats `json:"stats"`
}

func performanceResponseFromDomain(perf domain.PortfolioPerformance) PerformanceResponse {
	dates := make([]string, len(perf.Dates))
	for i, d := range perf.Dates {
		dates[i] = util.FormatDate(d)
	}
	return PerformanceResponse{
		Dates:            dates,
		PortfolioValues:  perf.PortfolioValues,
		NormalizedValues: perf.NormalizedValues,
		Stats:            perf.Stats,
	}
}

// computeFromRequest binds and validates a portfolio request, then runs
// it through the engine. on failure the error response has already been
// written
func (h ApiHandler) computeFromRequest(c *gin.Context) (*CalculatePortfolioRequest, *domain.PortfolioPerformance, bool) {
	var requestBody CalculatePortfolioRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return nil, nil, false
	}

	if err := domain.ValidateAssets(requestBody.Assets, domain.RequestWeightTolerance); err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return nil, nil, false
	}

	lookback, err := domain.NewLookback(requestBody.Lookback)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return nil, nil, false
	}

	perf, err := h.PortfolioService.ComputePortfolioPerformance(c.Request.Context(), l2_service.ComputePortfolioPerformanceInput{
		Assets:   requestBody.Assets,
		Lookback: lookback,
		Now:      h.now(),
	})
	if err != nil {
		returnServiceError(fmt.Errorf("failed to calculate portfolio performance: %w", err), c)
		return nil, nil, false
	}

	return &requestBody, perf, true
}

func (h ApiHandler) calculatePortfolio(c *gin.Context) {
	_, perf, ok := h.computeFromRequest(c)
	if !ok {
		return
	}

	c.JSON(200, CalculatePortfolioResponse{
		Performance: performanceResponseFromDomain(*perf),
	})
}

func (h ApiHandler) exportFilename(ext string) string {
	return fmt.Sprintf("portfolio-%s.%s", h.now().Format(time.DateOnly), ext)
}
