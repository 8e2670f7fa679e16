package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"portfoliobacktest/internal"
	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/report"
	l2_service "portfoliobacktest/internal/service/l2"
	mock_l1_service "portfoliobacktest/internal/service/l1/mocks"
	mock_l2_service "portfoliobacktest/internal/service/l2/mocks"
	"portfoliobacktest/internal/util"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*gin.Engine, *mock_l2_service.MockPortfolioService, *mock_l1_service.MockPriceService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	portfolioService := mock_l2_service.NewMockPortfolioService(ctrl)
	priceService := mock_l1_service.NewMockPriceService(ctrl)

	handler := ApiHandler{
		PortfolioService: portfolioService,
		BenchmarkHandler: internal.BenchmarkHandler{PriceService: priceService},
		Now:              func() time.Time { return testNow },
	}
	return handler.InitializeRouterEngine(), portfolioService, priceService
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func testPerformance() *domain.PortfolioPerformance {
	return &domain.PortfolioPerformance{
		Dates: []time.Time{
			util.NewDate(2024, 1, 2),
			util.NewDate(2024, 1, 3),
			util.NewDate(2024, 1, 4),
		},
		PortfolioValues:  []float64{1, 1.02, 1.046},
		NormalizedValues: []float64{1, 1.02, 1.046},
		Stats:            []domain.PeriodStats{},
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	out := map[string]string{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out["error"]
}

func TestApiHandler_calculatePortfolio(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		engine, portfolioService, _ := newTestEngine(t)

		portfolioService.EXPECT().
			ComputePortfolioPerformance(gomock.Any(), l2_service.ComputePortfolioPerformanceInput{
				Assets: []domain.Asset{
					{Ticker: "AAPL", Weight: 60},
					{Ticker: "MSFT", Weight: 40},
				},
				Lookback: domain.LookbackMax,
				Now:      testNow,
			}).
			Return(testPerformance(), nil)

		w := doRequest(engine, http.MethodPost, "/api/portfolio/calculate", `{"assets":[{"ticker":"AAPL","weight":60},{"ticker":"MSFT","weight":40}]}`)
		require.Equal(t, 200, w.Code)
		require.NotEmpty(t, w.Header().Get("X-Request-ID"))

		response := CalculatePortfolioResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(
			t,
			"",
			cmp.Diff(
				PerformanceResponse{
					Dates:            []string{"2024-01-02", "2024-01-03", "2024-01-04"},
					PortfolioValues:  []float64{1, 1.02, 1.046},
					NormalizedValues: []float64{1, 1.02, 1.046},
					Stats:            []domain.PeriodStats{},
				},
				response.Performance,
			),
		)
	})

	t.Run("lookback is passed through", func(t *testing.T) {
		engine, portfolioService, _ := newTestEngine(t)

		portfolioService.EXPECT().
			ComputePortfolioPerformance(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in l2_service.ComputePortfolioPerformanceInput) (*domain.PortfolioPerformance, error) {
				require.Equal(t, domain.Lookback5Y, in.Lookback)
				return testPerformance(), nil
			})

		w := doRequest(engine, http.MethodPost, "/api/portfolio/calculate", `{"assets":[{"ticker":"SPY","weight":100}],"lookback":"5Y"}`)
		require.Equal(t, 200, w.Code)
	})

	for _, tc := range []struct {
		name        string
		body        string
		errContains string
	}{
		{
			name:        "empty portfolio",
			body:        `{"assets":[]}`,
			errContains: "at least one asset",
		},
		{
			name:        "weights do not sum to 100",
			body:        `{"assets":[{"ticker":"AAPL","weight":60},{"ticker":"MSFT","weight":39.5}]}`,
			errContains: "99.50%",
		},
		{
			name:        "weights within engine tolerance but not request tolerance",
			body:        `{"assets":[{"ticker":"AAPL","weight":60},{"ticker":"MSFT","weight":39.95}]}`,
			errContains: "must sum to 100%",
		},
		{
			name:        "duplicate ticker",
			body:        `{"assets":[{"ticker":"AAPL","weight":50},{"ticker":"aapl","weight":50}]}`,
			errContains: "duplicate",
		},
		{
			name:        "malformed body",
			body:        `{"assets":`,
			errContains: "failed to read request body",
		},
		{
			name:        "unknown lookback",
			body:        `{"assets":[{"ticker":"SPY","weight":100}],"lookback":"2y"}`,
			errContains: "unknown lookback",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// no expectations, so any call into the engine fails the test
			engine, _, _ := newTestEngine(t)

			w := doRequest(engine, http.MethodPost, "/api/portfolio/calculate", tc.body)
			require.Equal(t, 400, w.Code)
			require.Contains(t, errorMessage(t, w), tc.errContains)
		})
	}

	t.Run("engine failures", func(t *testing.T) {
		for _, tc := range []struct {
			err  error
			code int
		}{
			{err: fmt.Errorf("%w: no data found for ZZZZZ", domain.ErrDataUnavailable), code: 500},
			{err: domain.ErrNoCommonDates, code: 500},
			{err: domain.ErrTimeout, code: 500},
			{err: domain.ErrComputationFailure, code: 500},
			{err: fmt.Errorf("%w: portfolio weights must sum to 100%%, got 99.50%%", domain.ErrInvalidWeights), code: 400},
		} {
			engine, portfolioService, _ := newTestEngine(t)
			portfolioService.EXPECT().
				ComputePortfolioPerformance(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			w := doRequest(engine, http.MethodPost, "/api/portfolio/calculate", `{"assets":[{"ticker":"SPY","weight":100}]}`)
			require.Equal(t, tc.code, w.Code, tc.err.Error())
			require.Contains(t, errorMessage(t, w), tc.err.Error())
		}
	})
}

func TestApiHandler_exportPortfolio(t *testing.T) {
	engine, portfolioService, _ := newTestEngine(t)
	portfolioService.EXPECT().
		ComputePortfolioPerformance(gomock.Any(), gomock.Any()).
		Return(testPerformance(), nil)

	w := doRequest(engine, http.MethodPost, "/api/portfolio/export", `{"assets":[{"ticker":"SPY","weight":100}]}`)
	require.Equal(t, 200, w.Code)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "portfolio-2024-03-01.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Equal(t, "date,value,normalized", lines[0])
	require.Len(t, lines, 4)
}

func TestApiHandler_portfolioChart(t *testing.T) {
	engine, portfolioService, _ := newTestEngine(t)
	portfolioService.EXPECT().
		ComputePortfolioPerformance(gomock.Any(), gomock.Any()).
		Return(testPerformance(), nil)

	w := doRequest(engine, http.MethodPost, "/api/portfolio/chart", `{"assets":[{"ticker":"SPY","weight":100}]}`)
	require.Equal(t, 200, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	require.True(t, report.IsPng(w.Body.Bytes()))
}

func TestApiHandler_benchmark(t *testing.T) {
	t.Run("weekly change", func(t *testing.T) {
		engine, _, priceService := newTestEngine(t)
		start := util.NewDate(2024, 1, 1)
		end := util.NewDate(2024, 1, 15)

		priceService.EXPECT().
			FetchRange(gomock.Any(), "SPY", start, end).
			Return([]domain.PricePoint{
				{Date: start, AdjClose: 100},
				{Date: util.NewDate(2024, 1, 5), AdjClose: 101},
				{Date: util.NewDate(2024, 1, 8), AdjClose: 110},
				{Date: util.NewDate(2024, 1, 15), AdjClose: 90},
			}, nil)

		w := doRequest(engine, http.MethodPost, "/benchmark", `{"symbol":"spy","start":"2024-01-01","end":"2024-01-15","granularity":"weekly"}`)
		require.Equal(t, 200, w.Code)

		out := benchmarkResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, benchmarkResponse{
			"2024-01-01": 0,
			"2024-01-08": 10,
			"2024-01-15": -10,
		}, out)
	})

	t.Run("bad date", func(t *testing.T) {
		engine, _, _ := newTestEngine(t)
		w := doRequest(engine, http.MethodPost, "/benchmark", `{"symbol":"SPY","start":"01/01/2024","end":"2024-01-15"}`)
		require.Equal(t, 400, w.Code)
	})

	t.Run("no data", func(t *testing.T) {
		engine, _, priceService := newTestEngine(t)
		priceService.EXPECT().
			FetchRange(gomock.Any(), "ZZZZZ", gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: no data found for ZZZZZ", domain.ErrDataUnavailable))

		w := doRequest(engine, http.MethodPost, "/benchmark", `{"symbol":"ZZZZZ","start":"2024-01-01","end":"2024-01-15"}`)
		require.Equal(t, 500, w.Code)
		require.Contains(t, errorMessage(t, w), "ZZZZZ")
	})
}

func TestApiHandler_health(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	w := doRequest(engine, http.MethodGet, "/", "")
	require.Equal(t, 200, w.Code)
	require.True(t, bytes.Contains(w.Body.Bytes(), []byte("welcome")))
}
