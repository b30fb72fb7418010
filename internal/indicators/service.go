// Package indicators computes presentation-layer technical indicators (RSI,
// Bollinger Bands, moving averages, MACD) for the analysis report. These
// enrich the narrative around a series; none of them feed the composite risk
// score.
package indicators

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Service provides technical indicator calculations over a price series.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new indicator service.
func NewService() *Service {
	return &Service{
		log: log.With().Str("component", "indicators").Logger(),
	}
}

// Snapshot carries whichever indicators the series had enough data for.
// Absent indicators are nil, not zeroed.
type Snapshot struct {
	RSI            *RSIResult           `json:"rsi,omitempty"`
	Bollinger      *BollingerResult     `json:"bollinger_bands,omitempty"`
	MovingAverages *MovingAverageResult `json:"moving_averages,omitempty"`
	MACD           *MACDResult          `json:"macd,omitempty"`
}

// Snapshot computes all indicators best-effort. Indicators the series is too
// short for are skipped, not errored: enrichment must never fail an analysis.
func (s *Service) Snapshot(prices []float64) *Snapshot {
	snap := &Snapshot{}

	if rsi, err := s.RSI(prices, DefaultRSIPeriod); err == nil {
		snap.RSI = rsi
	} else {
		s.log.Debug().Err(err).Msg("Skipping RSI")
	}

	if bb, err := s.BollingerBands(prices, DefaultBollingerPeriod); err == nil {
		snap.Bollinger = bb
	} else {
		s.log.Debug().Err(err).Msg("Skipping Bollinger Bands")
	}

	if ma, err := s.MovingAverages(prices); err == nil {
		snap.MovingAverages = ma
	} else {
		s.log.Debug().Err(err).Msg("Skipping moving averages")
	}

	if macd, err := s.MACD(prices); err == nil {
		snap.MACD = macd
	} else {
		s.log.Debug().Err(err).Msg("Skipping MACD")
	}

	return snap
}

func validatePrices(prices []float64, minLen int) error {
	if len(prices) < minLen {
		return fmt.Errorf("need at least %d prices, got %d", minLen, len(prices))
	}
	return nil
}

// sliceToChan feeds a closed buffered channel, the input shape the
// cinar/indicator computations consume.
func sliceToChan(values []float64) chan float64 {
	c := make(chan float64, len(values))
	for _, v := range values {
		c <- v
	}
	close(c)
	return c
}

func collect(c <-chan float64) []float64 {
	var values []float64
	for v := range c {
		values = append(values, v)
	}
	return values
}
