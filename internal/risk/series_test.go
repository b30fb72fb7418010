package risk

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeriesValidation(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		points  []PricePoint
		wantErr error
	}{
		{
			name:   "valid series without timestamps",
			points: []PricePoint{{Price: 100}, {Price: 105}, {Price: 102}},
		},
		{
			name: "valid series with increasing timestamps",
			points: []PricePoint{
				{Time: base, Price: 100},
				{Time: base.AddDate(0, 0, 1), Price: 105},
			},
		},
		{
			name:    "empty series",
			points:  nil,
			wantErr: ErrInsufficientData,
		},
		{
			name:    "zero price",
			points:  []PricePoint{{Price: 100}, {Price: 0}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative price",
			points:  []PricePoint{{Price: 100}, {Price: -5}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "NaN price",
			points:  []PricePoint{{Price: 100}, {Price: math.NaN()}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "infinite price",
			points:  []PricePoint{{Price: 100}, {Price: math.Inf(1)}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "equal timestamps",
			points: []PricePoint{
				{Time: base, Price: 100},
				{Time: base, Price: 105},
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "decreasing timestamps",
			points: []PricePoint{
				{Time: base.AddDate(0, 0, 1), Price: 100},
				{Time: base, Price: 105},
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := NewSeries(tt.points)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.points), series.Len())
		})
	}
}

func TestSeriesImmutable(t *testing.T) {
	prices := []float64{100, 105, 110}
	series, err := NewSeriesFromPrices(prices)
	require.NoError(t, err)

	// Mutating the caller's slice must not leak into the series.
	prices[1] = 1
	assert.Equal(t, []float64{100, 105, 110}, series.Prices())

	// Mutating the returned copy must not either.
	got := series.Prices()
	got[0] = 1
	assert.Equal(t, []float64{100, 105, 110}, series.Prices())
}

func TestReturns(t *testing.T) {
	series, err := NewSeriesFromPrices([]float64{100, 105, 102, 108, 95, 110})
	require.NoError(t, err)

	returns, err := series.Returns()
	require.NoError(t, err)
	require.Len(t, returns, series.Len()-1)

	assert.InDelta(t, 0.05, returns[0], 1e-12)
	assert.InDelta(t, -3.0/105.0, returns[1], 1e-12)
	assert.InDelta(t, 6.0/102.0, returns[2], 1e-12)
	assert.InDelta(t, -13.0/108.0, returns[3], 1e-12)
	assert.InDelta(t, 15.0/95.0, returns[4], 1e-12)
}

func TestReturnsSinglePoint(t *testing.T) {
	series, err := NewSeriesFromPrices([]float64{100})
	require.NoError(t, err)

	_, err = series.Returns()
	assert.ErrorIs(t, err, ErrInsufficientData)
}
