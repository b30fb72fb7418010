package indicators

import (
	"fmt"

	"github.com/cinar/indicator/v2/volatility"
)

// DefaultBollingerPeriod is the conventional Bollinger Bands lookback.
const DefaultBollingerPeriod = 20

// BollingerResult represents the Bollinger Bands(period, ±2σ) calculation
// result at the latest observation.
type BollingerResult struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
	Width  float64 `json:"width"`  // band width as percent of the middle band
	Signal string  `json:"signal"` // "buy", "sell", "neutral"
}

// BollingerBands calculates Bollinger Bands with a 2 standard deviation
// envelope and classifies the latest price against the band edges.
func (s *Service) BollingerBands(prices []float64, period int) (*BollingerResult, error) {
	if period < 2 {
		return nil, fmt.Errorf("invalid Bollinger period: %d", period)
	}
	if err := validatePrices(prices, period); err != nil {
		return nil, err
	}

	bb := volatility.NewBollingerBandsWithPeriod[float64](period)
	// Compute yields the channels upper band first.
	upperChan, middleChan, lowerChan := bb.Compute(sliceToChan(prices))

	var lower, middle, upper []float64
	for {
		l, lok := <-lowerChan
		m, mok := <-middleChan
		u, uok := <-upperChan
		if !lok || !mok || !uok {
			break
		}
		lower = append(lower, l)
		middle = append(middle, m)
		upper = append(upper, u)
	}

	if len(middle) == 0 {
		return nil, fmt.Errorf("no Bollinger Bands values calculated")
	}

	currentUpper := upper[len(upper)-1]
	currentMiddle := middle[len(middle)-1]
	currentLower := lower[len(lower)-1]
	currentPrice := prices[len(prices)-1]

	width := ((currentUpper - currentLower) / currentMiddle) * 100

	signal := "neutral"
	if currentPrice <= currentLower {
		signal = "buy"
	} else if currentPrice >= currentUpper {
		signal = "sell"
	}

	return &BollingerResult{
		Upper:  currentUpper,
		Middle: currentMiddle,
		Lower:  currentLower,
		Width:  width,
		Signal: signal,
	}, nil
}
