package indicators

import (
	"github.com/cinar/indicator/v2/trend"
)

// Moving average lookbacks for the trend readout.
const (
	ShortMAPeriod = 20
	LongMAPeriod  = 50
)

// MovingAverageResult carries the 20- and 50-period simple moving averages
// and the trend they imply.
type MovingAverageResult struct {
	SMA20 float64 `json:"sma_20"`
	SMA50 float64 `json:"sma_50"`
	Trend string  `json:"trend"` // "up", "down", "flat"
}

// MovingAverages computes the short and long simple moving averages at the
// latest observation. Needs at least LongMAPeriod prices.
func (s *Service) MovingAverages(prices []float64) (*MovingAverageResult, error) {
	if err := validatePrices(prices, LongMAPeriod); err != nil {
		return nil, err
	}

	short := lastSMA(prices, ShortMAPeriod)
	long := lastSMA(prices, LongMAPeriod)

	// A half-percent dead zone keeps noise out of the trend call.
	trendLabel := "flat"
	switch {
	case short > long*1.005:
		trendLabel = "up"
	case short < long*0.995:
		trendLabel = "down"
	}

	return &MovingAverageResult{SMA20: short, SMA50: long, Trend: trendLabel}, nil
}

func lastSMA(prices []float64, period int) float64 {
	sma := trend.NewSmaWithPeriod[float64](period)
	values := collect(sma.Compute(sliceToChan(prices)))
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
