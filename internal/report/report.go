package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/vicanso/go-charts/v2"
)

type CurveRow struct {
	Date       string  `csv:"date"`
	Value      float64 `csv:"value"`
	Normalized float64 `csv:"normalized"`
}

func CurveRows(perf domain.PortfolioPerformance) []CurveRow {
	out := make([]CurveRow, len(perf.Dates))
	for i, d := range perf.Dates {
		out[i] = CurveRow{
			Date:       util.FormatDate(d),
			Value:      perf.PortfolioValues[i],
			Normalized: perf.NormalizedValues[i],
		}
	}
	return out
}

func CurveCsv(perf domain.PortfolioPerformance) ([]byte, error) {
	out, err := gocsv.MarshalBytes(CurveRows(perf))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal curve csv: %w", err)
	}
	return out, nil
}

// WriteStatsTable prints one row per period, aligned for a terminal
func WriteStatsTable(w io.Writer, stats []domain.PeriodStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Period\tTotal Return\tCAGR\tVolatility\tSharpe\tMax Drawdown\t")
	for _, s := range stats {
		fmt.Fprintf(
			tw,
			"%s\t%.2f%%\t%.2f%%\t%.2f%%\t%.2f\t%.2f%%\t\n",
			s.Period,
			s.TotalReturn,
			s.Cagr,
			s.Volatility,
			s.SharpeRatio,
			s.MaxDrawdown,
		)
	}
	return tw.Flush()
}

// RenderChart draws the normalized curve as a PNG line chart
func RenderChart(perf domain.PortfolioPerformance, assets []domain.Asset) ([]byte, error) {
	if len(perf.NormalizedValues) == 0 {
		return nil, fmt.Errorf("%w: nothing to chart", domain.ErrComputationFailure)
	}

	xLabels := make([]string, len(perf.Dates))
	for i, d := range perf.Dates {
		xLabels[i] = util.FormatDate(d)
	}

	minVal, maxVal := perf.NormalizedValues[0], perf.NormalizedValues[0]
	for _, v := range perf.NormalizedValues {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = maxVal * 0.05
	}
	yMin := minVal - padding
	yMax := maxVal + padding

	holdings := []string{}
	for _, a := range assets {
		holdings = append(holdings, fmt.Sprintf("%s %.0f%%", domain.NormalizeTicker(a.Ticker), a.Weight))
	}
	title := fmt.Sprintf("Portfolio (%s)", strings.Join(holdings, ", "))
	if len(perf.Stats) > 0 {
		s := perf.Stats[len(perf.Stats)-1]
		title += fmt.Sprintf(
			"\n%s Return: %.2f%% | Sharpe: %.2f | Vol: %.2f%% | MaxDD: %.2f%%",
			s.Period, s.TotalReturn, s.SharpeRatio, s.Volatility, s.MaxDrawdown,
		)
	}

	splitNum := 6
	if len(xLabels) <= 30 {
		splitNum = max(len(xLabels)/3, 3)
	}

	p, err := charts.LineRender(
		[][]float64{perf.NormalizedValues},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}

// pngSignature is the 8 byte header every png starts with
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func IsPng(b []byte) bool {
	return bytes.HasPrefix(b, pngSignature)
}
