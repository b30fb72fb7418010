package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsightlab/finsight/internal/risk"
)

func newTestServer() *Server {
	return NewServer(Config{
		Host:     "127.0.0.1",
		Port:     0,
		Defaults: risk.DefaultParams(),
	})
}

func postAnalyze(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer()
	rf := 0.02

	rec := postAnalyze(t, s, AnalyzeRequest{
		Prices:       []float64{100, 105, 102, 108, 95, 110},
		RiskFreeRate: &rf,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 6, resp.Observations)
	assert.Equal(t, 0.02, resp.Params.RiskFreeRate)
	assert.Equal(t, 252, resp.Params.TradingDays)

	assert.InDelta(t, 1.653961631755884, resp.Metrics.Volatility, 1e-9)
	assert.InDelta(t, -0.12037037037037036, resp.Metrics.MaxDrawdown, 1e-9)
	assert.InDelta(t, -0.102010582010582, resp.Metrics.VaR95, 1e-9)
	assert.InDelta(t, 3.576826595577001, resp.Metrics.SharpeRatio, 1e-9)
	assert.InDelta(t, 5.741169503121072, resp.Metrics.SortinoRatio, 1e-9)

	assert.Equal(t, 4, resp.Rating.Score)
	assert.Equal(t, "High", resp.Rating.Category)
	assert.Nil(t, resp.Indicators)
}

func TestAnalyzeWithIndicators(t *testing.T) {
	s := newTestServer()

	prices := make([]float64, 120)
	for i := range prices {
		prices[i] = 100 + float64(i)*0.5
	}

	rec := postAnalyze(t, s, AnalyzeRequest{Prices: prices, IncludeIndicators: true})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotNil(t, resp.Indicators)
	assert.NotNil(t, resp.Indicators.RSI)
	assert.NotNil(t, resp.Indicators.Bollinger)
	assert.NotNil(t, resp.Indicators.MovingAverages)
	assert.NotNil(t, resp.Indicators.MACD)
}

func TestAnalyzeWithTimestamps(t *testing.T) {
	s := newTestServer()
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("strictly increasing accepted", func(t *testing.T) {
		rec := postAnalyze(t, s, AnalyzeRequest{
			Prices: []float64{100, 105, 102},
			Timestamps: []time.Time{
				base, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2),
			},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-monotonic rejected", func(t *testing.T) {
		rec := postAnalyze(t, s, AnalyzeRequest{
			Prices: []float64{100, 105, 102},
			Timestamps: []time.Time{
				base, base.AddDate(0, 0, 2), base.AddDate(0, 0, 1),
			},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("length mismatch rejected", func(t *testing.T) {
		rec := postAnalyze(t, s, AnalyzeRequest{
			Prices:     []float64{100, 105, 102},
			Timestamps: []time.Time{base},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAnalyzeErrorTranslation(t *testing.T) {
	s := newTestServer()

	t.Run("insufficient data maps to 422", func(t *testing.T) {
		rec := postAnalyze(t, s, AnalyzeRequest{Prices: []float64{100}})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "insufficient data")
	})

	t.Run("non-positive price maps to 400", func(t *testing.T) {
		rec := postAnalyze(t, s, AnalyzeRequest{Prices: []float64{100, -5, 102}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid input")
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing prices maps to 400", func(t *testing.T) {
		rec := postAnalyze(t, s, map[string]any{"risk_free_rate": 0.02})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAnalyzeParamOverrides(t *testing.T) {
	s := newTestServer()
	days := 365

	rec := postAnalyze(t, s, AnalyzeRequest{
		Prices:      []float64{100, 105, 102, 108},
		TradingDays: &days,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 365, resp.Params.TradingDays)
}

func TestAnalyzeRejectsNonPositiveTradingDays(t *testing.T) {
	s := newTestServer()

	for _, days := range []int{0, -5} {
		d := days
		rec := postAnalyze(t, s, AnalyzeRequest{
			Prices:      []float64{100, 105, 102, 108},
			TradingDays: &d,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "trading_days=%d", days)
		assert.Contains(t, rec.Body.String(), "trading_days")
	}
}
