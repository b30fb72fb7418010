package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/finsightlab/finsight/internal/indicators"
	"github.com/finsightlab/finsight/internal/metrics"
	"github.com/finsightlab/finsight/internal/risk"
)

// AnalyzeRequest is the JSON body of POST /api/v1/analyze. Timestamps are
// optional; when present they must match prices in length and be strictly
// increasing. RiskFreeRate and TradingDays override the service defaults per
// request.
type AnalyzeRequest struct {
	Prices            []float64   `json:"prices" binding:"required"`
	Timestamps        []time.Time `json:"timestamps"`
	RiskFreeRate      *float64    `json:"risk_free_rate"`
	TradingDays       *int        `json:"trading_days"`
	IncludeIndicators bool        `json:"include_indicators"`
}

// AnalyzeResponse is the JSON result of a successful analysis.
type AnalyzeResponse struct {
	RequestID    string               `json:"request_id"`
	Observations int                  `json:"observations"`
	Params       risk.Params          `json:"params"`
	Metrics      risk.Metrics         `json:"metrics"`
	Rating       risk.Rating          `json:"rating"`
	Indicators   *indicators.Snapshot `json:"indicators,omitempty"`
}

// handleAnalyze runs the risk engine over the posted price series.
func (s *Server) handleAnalyze(c *gin.Context) {
	start := time.Now()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordAnalysis(metrics.ErrorKindBadRequest, elapsedMs(start), 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body: " + err.Error()})
		return
	}

	if len(req.Timestamps) > 0 && len(req.Timestamps) != len(req.Prices) {
		metrics.RecordAnalysis(metrics.ErrorKindBadRequest, elapsedMs(start), len(req.Prices))
		c.JSON(http.StatusBadRequest, gin.H{"error": "timestamps and prices must have the same length"})
		return
	}

	if req.TradingDays != nil && *req.TradingDays < 1 {
		metrics.RecordAnalysis(metrics.ErrorKindInvalidInput, elapsedMs(start), len(req.Prices))
		c.JSON(http.StatusBadRequest, gin.H{"error": "trading_days must be at least 1"})
		return
	}

	series, err := buildSeries(req)
	if err != nil {
		s.renderEngineError(c, err, start, len(req.Prices))
		return
	}

	engine := s.engine
	if req.RiskFreeRate != nil || req.TradingDays != nil {
		params := s.engine.Params()
		if req.RiskFreeRate != nil {
			params.RiskFreeRate = *req.RiskFreeRate
		}
		if req.TradingDays != nil {
			params.TradingDays = *req.TradingDays
		}
		engine = risk.NewEngine(params)
	}

	report, err := engine.Analyze(series)
	if err != nil {
		s.renderEngineError(c, err, start, len(req.Prices))
		return
	}

	metrics.RecordAnalysis(metrics.ErrorKindNone, elapsedMs(start), len(req.Prices))
	metrics.RecordRating(report.Rating.Score)

	resp := AnalyzeResponse{
		RequestID:    c.GetString("request_id"),
		Observations: series.Len(),
		Params:       engine.Params(),
		Metrics:      report.Metrics,
		Rating:       report.Rating,
	}
	if req.IncludeIndicators {
		resp.Indicators = s.indicators.Snapshot(req.Prices)
	}

	log.Debug().
		Str("request_id", resp.RequestID).
		Int("observations", resp.Observations).
		Int("score", report.Rating.Score).
		Msg("Analysis completed")

	c.JSON(http.StatusOK, resp)
}

func buildSeries(req AnalyzeRequest) (*risk.Series, error) {
	if len(req.Timestamps) == 0 {
		return risk.NewSeriesFromPrices(req.Prices)
	}

	points := make([]risk.PricePoint, len(req.Prices))
	for i := range req.Prices {
		points[i] = risk.PricePoint{Time: req.Timestamps[i], Price: req.Prices[i]}
	}
	return risk.NewSeries(points)
}

// renderEngineError translates the engine's error taxonomy into status codes.
// Insufficient data is a well-formed but unanswerable request (422); invalid
// input is the caller's fault (400).
func (s *Server) renderEngineError(c *gin.Context, err error, start time.Time, seriesLen int) {
	switch {
	case errors.Is(err, risk.ErrInsufficientData):
		metrics.RecordAnalysis(metrics.ErrorKindInsufficientData, elapsedMs(start), seriesLen)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, risk.ErrInvalidInput):
		metrics.RecordAnalysis(metrics.ErrorKindInvalidInput, elapsedMs(start), seriesLen)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		metrics.RecordAnalysis(metrics.ErrorKindBadRequest, elapsedMs(start), seriesLen)
		log.Error().Err(err).Msg("Unexpected engine error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
