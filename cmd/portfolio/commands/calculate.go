package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	deps "portfoliobacktest/cmd"
	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/logger"
	"portfoliobacktest/internal/report"
	l2_service "portfoliobacktest/internal/service/l2"
	"portfoliobacktest/internal/util"

	"github.com/spf13/cobra"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute portfolio performance",
	Long: `Fetch daily prices for every asset, build the buy-and-hold curve on the
dates they all share and print the period statistics.

Weights are percentages and must sum to 100.

Example:
  portfolio calculate --asset AAPL=60 --asset MSFT=40 --lookback 10y --format table`,
	RunE: runCalculate,
}

var (
	calculateAssets   []string
	calculateLookback string
	calculateFormat   string
	calculateAsOf     string
)

func init() {
	rootCmd.AddCommand(calculateCmd)

	calculateCmd.Flags().StringArrayVarP(&calculateAssets, "asset", "a", nil, "TICKER=WEIGHT, repeatable")
	calculateCmd.Flags().StringVar(&calculateLookback, "lookback", "max", "1y, 3y, 5y, 10y or max")
	calculateCmd.Flags().StringVarP(&calculateFormat, "format", "f", "json", "json, table or csv")
	calculateCmd.Flags().StringVar(&calculateAsOf, "as-of", "", "evaluate as of this date (YYYY-MM-DD), defaults to today")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	assets, err := parseAssetFlags(calculateAssets)
	if err != nil {
		return err
	}
	if err := domain.ValidateAssets(assets, domain.RequestWeightTolerance); err != nil {
		return err
	}
	lookback, err := domain.NewLookback(calculateLookback)
	if err != nil {
		return err
	}
	now, err := parseAsOf(calculateAsOf)
	if err != nil {
		return err
	}

	cfg, err := util.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	handler, err := deps.InitializeDependencies(*cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.NewContext(ctx, logger.FromContext(ctx).With("command", "calculate"))

	perf, err := handler.PortfolioService.ComputePortfolioPerformance(ctx, l2_service.ComputePortfolioPerformanceInput{
		Assets:   assets,
		Lookback: lookback,
		Now:      now,
	})
	if err != nil {
		return err
	}

	return writePerformance(cmd.OutOrStdout(), calculateFormat, *perf)
}

// parseAssetFlags turns TICKER=WEIGHT pairs into assets
func parseAssetFlags(flags []string) ([]domain.Asset, error) {
	assets := []domain.Asset{}
	for _, f := range flags {
		ticker, weight, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("%w: expected TICKER=WEIGHT, got %q", domain.ErrInvalidAssets, f)
		}
		w, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(weight), "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid weight for %s: %w", domain.ErrInvalidAssets, ticker, err)
		}
		assets = append(assets, domain.Asset{
			Ticker: domain.NormalizeTicker(ticker),
			Weight: w,
		})
	}
	return assets, nil
}

func parseAsOf(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date: %w", err)
	}
	return t, nil
}

type performanceJson struct {
	Dates            []string             `json:"dates"`
	PortfolioValues  []float64            `json:"portfolioValues"`
	NormalizedValues []float64            `json:"normalizedValues"`
	Stats            []domain.PeriodStats `json:"stats"`
}

func writePerformance(w io.Writer, format string, perf domain.PortfolioPerformance) error {
	switch strings.ToLower(format) {
	case "json":
		dates := make([]string, len(perf.Dates))
		for i, d := range perf.Dates {
			dates[i] = util.FormatDate(d)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]performanceJson{
			"performance": {
				Dates:            dates,
				PortfolioValues:  perf.PortfolioValues,
				NormalizedValues: perf.NormalizedValues,
				Stats:            perf.Stats,
			},
		})
	case "table":
		fmt.Fprintf(w, "%s to %s, %d trading days\n\n", util.FormatDate(perf.Dates[0]), util.FormatDate(perf.Dates[len(perf.Dates)-1]), len(perf.Dates))
		if len(perf.Stats) == 0 {
			_, err := fmt.Fprintln(w, "not enough history for any period")
			return err
		}
		return report.WriteStatsTable(w, perf.Stats)
	case "csv":
		out, err := report.CurveCsv(perf)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("unknown format %q: expected json, table or csv", format)
}
