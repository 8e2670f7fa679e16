package l1_service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/logger"
	"portfoliobacktest/internal/repository"

	"golang.org/x/time/rate"
)

/**

behavior - every request fetches fresh series from the quote source, there is
no cache. a batch fetch never fails as a whole; each symbol gets either a
series or an error, and the caller decides what to do with partial results

*/

type PriceService interface {
	Fetch(ctx context.Context, symbol string, lookback domain.Lookback, now time.Time) ([]domain.PricePoint, error)
	FetchRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error)
	FetchMany(ctx context.Context, symbols []string, lookback domain.Lookback, now time.Time) map[string]FetchResult
}

// FetchResult holds either the series for one symbol or why it
// could not be loaded
type FetchResult struct {
	Prices []domain.PricePoint
	Err    error
}

type FetchOptions struct {
	// Timeout bounds a whole FetchMany batch
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	Concurrency    int
}

type priceServiceHandler struct {
	ChartRepository repository.ChartRepository
	Limiter         *rate.Limiter
	Options         FetchOptions
}

func NewPriceService(chartRepository repository.ChartRepository, options FetchOptions, requestsPerSecond float64) PriceService {
	if options.Concurrency <= 0 {
		options.Concurrency = 1
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &priceServiceHandler{
		ChartRepository: chartRepository,
		Limiter:         rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		Options:         options,
	}
}

func (h priceServiceHandler) Fetch(ctx context.Context, symbol string, lookback domain.Lookback, now time.Time) ([]domain.PricePoint, error) {
	return h.FetchRange(ctx, symbol, lookback.StartDate(now), now)
}

// FetchRange loads daily prices for one symbol, retrying transient
// failures with exponential backoff
func (h priceServiceHandler) FetchRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	log := logger.FromContext(ctx)

	backoff := h.Options.InitialBackoff
	var lastErr error
	for attempt := 0; attempt <= h.Options.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Warnw("retrying price fetch", "symbol", symbol, "attempt", attempt, "backoff", backoff, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, timeoutError(symbol, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		if err := h.Limiter.Wait(ctx); err != nil {
			return nil, timeoutError(symbol, err)
		}

		prices, err := h.ChartRepository.GetDailyPrices(ctx, symbol, start, end)
		if err == nil {
			return prices, nil
		}
		if ctx.Err() != nil {
			return nil, timeoutError(symbol, ctx.Err())
		}
		if errors.Is(err, repository.ErrNoPriceData) {
			return nil, fmt.Errorf("%w: no data found for %s: %w", domain.ErrDataUnavailable, symbol, err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: failed to fetch data for %s after %d attempts: %w", domain.ErrDataUnavailable, symbol, h.Options.MaxRetries+1, lastErr)
}

func timeoutError(symbol string, err error) error {
	return fmt.Errorf("%w: gave up fetching %s: %w", domain.ErrTimeout, symbol, err)
}

type fetchOutput struct {
	symbol string
	result FetchResult
}

// FetchMany fetches every distinct symbol concurrently and waits for all
// of them. the returned map has one entry per distinct input symbol
func (h priceServiceHandler) FetchMany(ctx context.Context, symbols []string, lookback domain.Lookback, now time.Time) map[string]FetchResult {
	log := logger.FromContext(ctx)
	if h.Options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Options.Timeout)
		defer cancel()
	}

	distinct := []string{}
	seen := map[string]bool{}
	for _, s := range symbols {
		if !seen[s] {
			seen[s] = true
			distinct = append(distinct, s)
		}
	}

	inputCh := make(chan string, len(distinct))
	for _, s := range distinct {
		inputCh <- s
	}
	close(inputCh)

	outputCh := make(chan fetchOutput, len(distinct))

	numWorkers := h.Options.Concurrency
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if numWorkers > len(distinct) {
		numWorkers = len(distinct)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range inputCh {
				prices, err := h.Fetch(ctx, symbol, lookback, now)
				if err != nil {
					log.Warnf("failed to fetch prices for %s: %s", symbol, err.Error())
				}
				outputCh <- fetchOutput{
					symbol: symbol,
					result: FetchResult{Prices: prices, Err: err},
				}
			}
		}()
	}

	wg.Wait()
	close(outputCh)

	out := make(map[string]FetchResult, len(distinct))
	for o := range outputCh {
		out[o.symbol] = o.result
	}

	return out
}
