package strategy

import (
	"github.com/Richie1129/vibe-backtester/internal/model"
	"github.com/Richie1129/vibe-backtester/internal/quant"
)

// LumpSum deploys the full amount at the first trading day's close and
// holds the position unchanged through the series.
type LumpSum struct {
	amount float64
}

func NewLumpSum(amount float64) *LumpSum {
	return &LumpSum{amount: amount}
}

func (s *LumpSum) Name() string {
	return "lump_sum"
}

func (s *LumpSum) Simulate(bars []model.PriceBar) *Outcome {
	// No data, no computation: documented degenerate contract.
	if len(bars) == 0 || s.amount <= 0 {
		return emptyOutcome()
	}

	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close.InexactFloat64()
	}

	shares := s.amount / closes[0]

	values := make([]PortfolioPoint, len(bars))
	for i, bar := range bars {
		values[i] = PortfolioPoint{Date: bar.Date, Value: shares * closes[i]}
	}

	return &Outcome{
		Values:        values,
		Returns:       quant.DailyReturns(closes),
		TotalInvested: s.amount,
		Start:         bars[0].Date,
	}
}
