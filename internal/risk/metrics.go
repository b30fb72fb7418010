package risk

import (
	"fmt"
	"math"
	"slices"
)

// Metrics is the fixed-shape result of one engine invocation.
// Volatility is always >= 0 and MaxDrawdown always <= 0.
type Metrics struct {
	Volatility   float64 `json:"volatility"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	VaR95        float64 `json:"var_95"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	SortinoRatio float64 `json:"sortino_ratio"`
}

// AnnualizedVolatility is the sample standard deviation of returns scaled by
// sqrt(tradingDays). A single return has no sample deviation and yields 0,
// never NaN.
func AnnualizedVolatility(returns []float64, tradingDays int) float64 {
	return sampleStdDev(returns) * math.Sqrt(float64(tradingDays))
}

// MaxDrawdown is the deepest decline from a running peak, expressed as a
// non-positive fraction. A monotonically non-decreasing series yields
// exactly 0.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	peak := prices[0]
	maxDD := 0.0
	for _, price := range prices {
		if price > peak {
			peak = price
		}
		dd := (price - peak) / peak
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// ValueAtRisk is the (1-confidence) percentile of the historical return
// distribution, computed with linear interpolation between order statistics.
// For confidence 0.95 this is the 5th percentile: a negative number for any
// series with losses in the tail.
//
// With very few observations the percentile is a coarse extrapolation; a
// single return yields that return itself.
func ValueAtRisk(returns []float64, confidence float64) (float64, error) {
	if len(returns) == 0 {
		return 0, fmt.Errorf("%w: no returns for VaR", ErrInsufficientData)
	}
	if confidence <= 0 || confidence >= 1 {
		return 0, fmt.Errorf("%w: confidence %v outside (0, 1)", ErrInvalidInput, confidence)
	}

	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	slices.Sort(sorted)

	return percentile(sorted, 1-confidence), nil
}

// SharpeRatio is annualized excess return per unit of total volatility:
//
//	(mean(returns)*tradingDays - riskFreeRate) / AnnualizedVolatility
//
// Zero volatility yields 0 rather than a division error; the same sentinel
// policy applies to SortinoRatio.
func SharpeRatio(returns []float64, riskFreeRate float64, tradingDays int) float64 {
	vol := AnnualizedVolatility(returns, tradingDays)
	if vol == 0 {
		return 0
	}
	return excessReturn(returns, riskFreeRate, tradingDays) / vol
}

// SortinoRatio is annualized excess return per unit of downside deviation,
// where downside deviation is the sample standard deviation of the negative
// returns scaled by sqrt(tradingDays). With no negative returns, or a single
// one, the downside deviation is 0 and the ratio is the 0 sentinel.
func SortinoRatio(returns []float64, riskFreeRate float64, tradingDays int) float64 {
	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}

	downsideDev := sampleStdDev(downside) * math.Sqrt(float64(tradingDays))
	if downsideDev == 0 {
		return 0
	}
	return excessReturn(returns, riskFreeRate, tradingDays) / downsideDev
}

func excessReturn(returns []float64, riskFreeRate float64, tradingDays int) float64 {
	return mean(returns)*float64(tradingDays) - riskFreeRate
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses Bessel's correction (N-1). Fewer than 2 values have no
// sample deviation and yield 0.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)

	return math.Sqrt(variance)
}

// percentile evaluates the p-quantile of sorted values at position p*(n-1),
// interpolating linearly between the two nearest order statistics.
func percentile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
