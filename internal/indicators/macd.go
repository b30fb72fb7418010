package indicators

import (
	"fmt"

	"github.com/cinar/indicator/v2/trend"
)

// MACD periods: fast EMA, slow EMA, signal EMA.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACDResult represents the MACD calculation result at the latest
// observation.
type MACDResult struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
	Crossover string  `json:"crossover"` // "bullish", "bearish", "none"
}

// MACD calculates the Moving Average Convergence Divergence with the
// standard 12/26/9 periods and reports whether the latest bar crossed the
// signal line.
func (s *Service) MACD(prices []float64) (*MACDResult, error) {
	if err := validatePrices(prices, MACDSlowPeriod+MACDSignalPeriod); err != nil {
		return nil, err
	}

	macd := trend.NewMacdWithPeriod[float64](MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	macdChan, signalChan := macd.Compute(sliceToChan(prices))

	var macdValues, signalValues []float64
	for {
		m, mok := <-macdChan
		sig, sok := <-signalChan
		if !mok || !sok {
			break
		}
		macdValues = append(macdValues, m)
		signalValues = append(signalValues, sig)
	}

	if len(macdValues) == 0 {
		return nil, fmt.Errorf("no MACD values calculated")
	}

	currentMACD := macdValues[len(macdValues)-1]
	currentSignal := signalValues[len(signalValues)-1]
	currentHistogram := currentMACD - currentSignal

	crossover := "none"
	if len(macdValues) >= 2 {
		prevHistogram := macdValues[len(macdValues)-2] - signalValues[len(signalValues)-2]
		if prevHistogram <= 0 && currentHistogram > 0 {
			crossover = "bullish"
		}
		if prevHistogram >= 0 && currentHistogram < 0 {
			crossover = "bearish"
		}
	}

	return &MACDResult{
		MACD:      currentMACD,
		Signal:    currentSignal,
		Histogram: currentHistogram,
		Crossover: crossover,
	}, nil
}
