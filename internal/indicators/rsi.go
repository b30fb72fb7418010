package indicators

import (
	"fmt"

	"github.com/cinar/indicator/v2/momentum"
)

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// RSIResult represents the RSI calculation result.
type RSIResult struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"` // "oversold", "overbought", "neutral"
}

// RSI calculates the Relative Strength Index over the given period and
// classifies the latest value against the conventional 30/70 bounds.
func (s *Service) RSI(prices []float64, period int) (*RSIResult, error) {
	if period < 1 {
		return nil, fmt.Errorf("invalid RSI period: %d", period)
	}
	if err := validatePrices(prices, period+1); err != nil {
		return nil, err
	}

	rsi := momentum.NewRsiWithPeriod[float64](period)
	values := collect(rsi.Compute(sliceToChan(prices)))
	if len(values) == 0 {
		return nil, fmt.Errorf("no RSI values calculated")
	}

	current := values[len(values)-1]

	signal := "neutral"
	if current < 30 {
		signal = "oversold"
	} else if current > 70 {
		signal = "overbought"
	}

	return &RSIResult{Value: current, Signal: signal}, nil
}
