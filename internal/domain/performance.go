package domain

import "time"

// PortfolioCurve is the buy-and-hold value of the portfolio on every
// aligned trading day, anchored at the first day
type PortfolioCurve struct {
	Dates  []time.Time
	Values []float64
}

type PeriodStats struct {
	Period      string  `json:"period"`
	Cagr        float64 `json:"cagr"`
	Volatility  float64 `json:"volatility"`
	SharpeRatio float64 `json:"sharpeRatio"`
	MaxDrawdown float64 `json:"maxDrawdown"`
	TotalReturn float64 `json:"totalReturn"`
}

type PortfolioPerformance struct {
	Dates            []time.Time
	PortfolioValues  []float64
	NormalizedValues []float64
	Stats            []PeriodStats
}
