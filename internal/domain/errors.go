package domain

import "errors"

var (
	ErrInvalidWeights     = errors.New("invalid weights")
	ErrInvalidAssets      = errors.New("invalid assets")
	ErrDataUnavailable    = errors.New("data unavailable")
	ErrNoCommonDates      = errors.New("no common dates")
	ErrComputationFailure = errors.New("computation failure")
	ErrTimeout            = errors.New("timeout")
)

// IsValidationError reports whether err was caused by bad caller input
// rather than by fetching or computing
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidWeights) || errors.Is(err, ErrInvalidAssets)
}
