package risk

import (
	"fmt"
	"math"
)

// DefaultTradingDays is the annualization factor for daily observations.
const DefaultTradingDays = 252

// VaRConfidence is the confidence level of the reported Value-at-Risk.
const VaRConfidence = 0.95

// Params are the engine's injected inputs. The zero value of TradingDays
// selects DefaultTradingDays; RiskFreeRate defaults to 0.
type Params struct {
	RiskFreeRate float64 `json:"risk_free_rate"`
	TradingDays  int     `json:"trading_days"`
}

// DefaultParams returns the engine defaults: zero risk-free rate, 252
// trading days per year.
func DefaultParams() Params {
	return Params{RiskFreeRate: 0, TradingDays: DefaultTradingDays}
}

// Report bundles the metrics of one invocation with their derived rating.
type Report struct {
	Metrics Metrics `json:"metrics"`
	Rating  Rating  `json:"rating"`
}

// Engine runs the full pipeline: prices -> returns -> per-metric
// calculators -> composite rating. It holds no mutable state; invocations
// are independent and safe to run concurrently.
type Engine struct {
	params  Params
	weights Weights
}

// NewEngine creates an engine with the given parameters, substituting
// DefaultTradingDays when TradingDays is unset.
func NewEngine(params Params) *Engine {
	if params.TradingDays <= 0 {
		params.TradingDays = DefaultTradingDays
	}
	return &Engine{params: params, weights: DefaultWeights}
}

// Params returns the engine's effective parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Analyze computes the full metrics bundle and composite rating for a price
// series. It needs at least 2 observations. Errors propagate unmodified;
// the engine performs no recovery and no logging.
func (e *Engine) Analyze(series *Series) (*Report, error) {
	if math.IsNaN(e.params.RiskFreeRate) || math.IsInf(e.params.RiskFreeRate, 0) {
		return nil, fmt.Errorf("%w: non-finite risk-free rate", ErrInvalidInput)
	}

	returns, err := series.Returns()
	if err != nil {
		return nil, err
	}

	var95, err := ValueAtRisk(returns, VaRConfidence)
	if err != nil {
		return nil, err
	}

	metrics := Metrics{
		Volatility:   AnnualizedVolatility(returns, e.params.TradingDays),
		MaxDrawdown:  MaxDrawdown(series.Prices()),
		VaR95:        var95,
		SharpeRatio:  SharpeRatio(returns, e.params.RiskFreeRate, e.params.TradingDays),
		SortinoRatio: SortinoRatio(returns, e.params.RiskFreeRate, e.params.TradingDays),
	}

	return &Report{
		Metrics: metrics,
		Rating:  Rate(metrics, e.weights),
	}, nil
}
