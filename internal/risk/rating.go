package risk

import "math"

// Rating is the composite risk classification derived from a Metrics bundle.
// Score is an integer in [1,5]; Category is its fixed label.
type Rating struct {
	Score    int    `json:"score"`
	Category string `json:"category"`
}

// Weights maps each scored metric to its contribution to the composite score.
// The defaults sum to 1.0 and are treated as constants, not tunables.
type Weights struct {
	Volatility  float64
	MaxDrawdown float64
	VaR         float64
	Sharpe      float64
}

// DefaultWeights is the fixed weighting of the four scored metrics.
var DefaultWeights = Weights{
	Volatility:  0.3,
	MaxDrawdown: 0.3,
	VaR:         0.2,
	Sharpe:      0.2,
}

// Severity tier multipliers. A metric in its severe band contributes
// weight*4, in its elevated band weight*2, otherwise nothing.
const (
	tierNone     = 0.0
	tierElevated = 2.0
	tierSevere   = 4.0
)

// band maps the half-open interval [lower, upper) of a metric's value to a
// severity tier. Each metric's bands cover the whole real line in order, so
// tier assignment is a plain lookup with no branch-order dependence.
type band struct {
	lower float64
	upper float64
	tier  float64
}

var (
	volatilityBands = []band{
		{math.Inf(-1), 0.20, tierNone},
		{0.20, 0.40, tierElevated},
		{0.40, math.Inf(1), tierSevere},
	}
	drawdownBands = []band{
		{math.Inf(-1), -0.25, tierSevere},
		{-0.25, -0.10, tierElevated},
		{-0.10, math.Inf(1), tierNone},
	}
	varBands = []band{
		{math.Inf(-1), -0.04, tierSevere},
		{-0.04, -0.02, tierElevated},
		{-0.02, math.Inf(1), tierNone},
	}
	sharpeBands = []band{
		{math.Inf(-1), 0.0, tierSevere},
		{0.0, 1.0, tierElevated},
		{1.0, math.Inf(1), tierNone},
	}
)

var categories = [...]string{
	1: "Very Low",
	2: "Low",
	3: "Moderate",
	4: "High",
	5: "Very High",
}

// Rate derives the composite rating from a metrics bundle. The raw score
// starts at 1 and accumulates weight*tier per metric; the final score is
// rounded half-up and clamped to [1,5]. Same input, same output: the
// function is total, pure, and state-free.
func Rate(m Metrics, w Weights) Rating {
	raw := 1.0
	raw += w.Volatility * lookupTier(volatilityBands, m.Volatility)
	raw += w.MaxDrawdown * lookupTier(drawdownBands, m.MaxDrawdown)
	raw += w.VaR * lookupTier(varBands, m.VaR95)
	raw += w.Sharpe * lookupTier(sharpeBands, m.SharpeRatio)

	score := roundHalfUp(raw)
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}

	return Rating{Score: score, Category: categories[score]}
}

func lookupTier(bands []band, value float64) float64 {
	for _, b := range bands {
		if value >= b.lower && value < b.upper {
			return b.tier
		}
	}
	// Only reachable for NaN, which belongs to no band.
	return tierNone
}

// roundHalfUp is the pinned rounding rule for the composite score: exact .5
// boundaries round toward the higher score.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
