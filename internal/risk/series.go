// Package risk implements the risk-metrics engine: a deterministic pipeline
// from an ordered historical price series to annualized volatility, maximum
// drawdown, historical Value-at-Risk, Sharpe and Sortino ratios, and a
// composite 1-5 risk rating.
//
// Every calculation is a pure function of its inputs. The package never logs,
// retries, or substitutes defaults; bad input surfaces as ErrInsufficientData
// or ErrInvalidInput and propagates to the caller unmodified.
package risk

import (
	"fmt"
	"math"
	"time"
)

// PricePoint is a single observation in a price series. Time is optional;
// a zero Time means the series carries prices only.
type PricePoint struct {
	Time  time.Time `json:"time,omitzero"`
	Price float64   `json:"price"`
}

// Series is an immutable, chronologically ascending price series.
// Construct with NewSeries or NewSeriesFromPrices; both copy their input.
type Series struct {
	points []PricePoint
}

// NewSeries validates and copies the given points into a Series.
// Prices must be positive and finite. If timestamps are present they must be
// strictly increasing. Returns ErrInvalidInput on any violation and
// ErrInsufficientData for an empty slice.
func NewSeries(points []PricePoint) (*Series, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: series is empty", ErrInsufficientData)
	}

	copied := make([]PricePoint, len(points))
	copy(copied, points)

	for i, p := range copied {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return nil, fmt.Errorf("%w: non-finite price at index %d", ErrInvalidInput, i)
		}
		if p.Price <= 0 {
			return nil, fmt.Errorf("%w: non-positive price %v at index %d", ErrInvalidInput, p.Price, i)
		}
		if i > 0 && !copied[i-1].Time.IsZero() && !p.Time.IsZero() && !p.Time.After(copied[i-1].Time) {
			return nil, fmt.Errorf("%w: timestamps not strictly increasing at index %d", ErrInvalidInput, i)
		}
	}

	return &Series{points: copied}, nil
}

// NewSeriesFromPrices builds a Series from bare prices with no timestamps.
func NewSeriesFromPrices(prices []float64) (*Series, error) {
	points := make([]PricePoint, len(prices))
	for i, p := range prices {
		points[i].Price = p
	}
	return NewSeries(points)
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.points)
}

// Prices returns a copy of the price column.
func (s *Series) Prices() []float64 {
	prices := make([]float64, len(s.points))
	for i, p := range s.points {
		prices[i] = p.Price
	}
	return prices
}

// Returns computes simple period-over-period returns:
//
//	return[i] = (price[i+1] - price[i]) / price[i]
//
// The result has length Len()-1. A series with fewer than 2 points has no
// defined return series and yields ErrInsufficientData.
func (s *Series) Returns() ([]float64, error) {
	if len(s.points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices for returns, got %d", ErrInsufficientData, len(s.points))
	}

	returns := make([]float64, len(s.points)-1)
	for i := 1; i < len(s.points); i++ {
		returns[i-1] = (s.points[i].Price - s.points[i-1].Price) / s.points[i-1].Price
	}
	return returns, nil
}
