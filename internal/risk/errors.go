package risk

import "errors"

var (
	// ErrInsufficientData indicates the series has fewer observations than
	// the requested calculation needs (at least 2 prices for returns).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidInput indicates a non-positive price, a non-finite value,
	// or non-increasing timestamps.
	ErrInvalidInput = errors.New("invalid input")
)
