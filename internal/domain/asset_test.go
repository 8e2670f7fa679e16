package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAssets(t *testing.T) {
	for _, tc := range []struct {
		name      string
		assets    []Asset
		tolerance float64
		err       error
	}{
		{
			name:      "exact",
			assets:    []Asset{{Ticker: "AAPL", Weight: 60}, {Ticker: "MSFT", Weight: 40}},
			tolerance: RequestWeightTolerance,
		},
		{
			name:      "within request tolerance",
			assets:    []Asset{{Ticker: "AAPL", Weight: 33.333}, {Ticker: "MSFT", Weight: 33.333}, {Ticker: "GOOG", Weight: 33.333}},
			tolerance: RequestWeightTolerance,
		},
		{
			name:      "empty",
			assets:    []Asset{},
			tolerance: RequestWeightTolerance,
			err:       ErrInvalidWeights,
		},
		{
			name:      "off by half a percent",
			assets:    []Asset{{Ticker: "AAPL", Weight: 59.5}, {Ticker: "MSFT", Weight: 40}},
			tolerance: EngineWeightTolerance,
			err:       ErrInvalidWeights,
		},
		{
			name:      "passes engine tolerance only",
			assets:    []Asset{{Ticker: "AAPL", Weight: 59.95}, {Ticker: "MSFT", Weight: 40}},
			tolerance: EngineWeightTolerance,
		},
		{
			name:      "fails request tolerance",
			assets:    []Asset{{Ticker: "AAPL", Weight: 59.95}, {Ticker: "MSFT", Weight: 40}},
			tolerance: RequestWeightTolerance,
			err:       ErrInvalidWeights,
		},
		{
			name:      "blank ticker",
			assets:    []Asset{{Ticker: "  ", Weight: 100}},
			tolerance: RequestWeightTolerance,
			err:       ErrInvalidAssets,
		},
		{
			name:      "duplicate ignoring case",
			assets:    []Asset{{Ticker: "aapl", Weight: 50}, {Ticker: "AAPL ", Weight: 50}},
			tolerance: RequestWeightTolerance,
			err:       ErrInvalidAssets,
		},
		{
			name:      "zero weight",
			assets:    []Asset{{Ticker: "AAPL", Weight: 100}, {Ticker: "MSFT", Weight: 0}},
			tolerance: RequestWeightTolerance,
			err:       ErrInvalidAssets,
		},
		{
			name:      "weight over 100",
			assets:    []Asset{{Ticker: "AAPL", Weight: 150}, {Ticker: "MSFT", Weight: -50}},
			tolerance: RequestWeightTolerance,
			err:       ErrInvalidAssets,
		},
		{
			name:      "nan weight",
			assets:    []Asset{{Ticker: "AAPL", Weight: math.NaN()}},
			tolerance: RequestWeightTolerance,
			err:       ErrInvalidAssets,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAssets(tc.assets, tc.tolerance)
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
			require.True(t, IsValidationError(err))
		})
	}
}

func TestNormalizeTicker(t *testing.T) {
	require.Equal(t, "BRK.B", NormalizeTicker(" brk.b\t"))
}
