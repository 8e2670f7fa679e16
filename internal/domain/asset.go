package domain

import (
	"fmt"
	"math"
	"strings"
)

const (
	// RequestWeightTolerance is how far from 100 the weights of an
	// incoming request may sum
	RequestWeightTolerance = 0.01
	// EngineWeightTolerance is the looser check applied right before
	// computing performance
	EngineWeightTolerance = 0.1
)

type Asset struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}

// NormalizeTicker is the canonical form used for fetching and
// duplicate detection
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func TotalWeight(assets []Asset) float64 {
	sum := 0.0
	for _, a := range assets {
		sum += a.Weight
	}
	return sum
}

// ValidateAssets checks that the portfolio is non-empty, that every
// ticker is present and unique, and that the percentage weights sum to
// 100 within tolerance
func ValidateAssets(assets []Asset, tolerance float64) error {
	if len(assets) == 0 {
		return fmt.Errorf("%w: please add at least one asset to your portfolio", ErrInvalidWeights)
	}

	seen := map[string]bool{}
	for _, a := range assets {
		ticker := NormalizeTicker(a.Ticker)
		if ticker == "" {
			return fmt.Errorf("%w: ticker cannot be empty", ErrInvalidAssets)
		}
		if seen[ticker] {
			return fmt.Errorf("%w: duplicate ticker %s", ErrInvalidAssets, ticker)
		}
		seen[ticker] = true
		if math.IsNaN(a.Weight) || a.Weight <= 0 || a.Weight > 100 {
			return fmt.Errorf("%w: weight for %s must be in (0, 100], got %v", ErrInvalidAssets, ticker, a.Weight)
		}
	}

	if total := TotalWeight(assets); math.Abs(total-100) > tolerance {
		return fmt.Errorf("%w: portfolio weights must sum to 100%%, got %.2f%%", ErrInvalidWeights, total)
	}

	return nil
}
