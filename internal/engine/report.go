package engine

import (
	"math"

	"github.com/Richie1129/vibe-backtester/internal/model"
	"github.com/Richie1129/vibe-backtester/internal/quant"
	"github.com/Richie1129/vibe-backtester/internal/strategy"
)

const daysPerYear = 365.25

// BuildResult derives the scalar metrics from a raw simulation outcome
// and assembles the immutable per-symbol report. This is the presentation
// boundary: percentage metrics are scaled to percent and all figures are
// rounded to two decimals here and nowhere else, so the calculators
// compose without compounding rounding error.
func BuildResult(symbol, name string, outcome *strategy.Outcome, calc *quant.Calculator) model.BacktestResult {
	result := model.BacktestResult{
		Symbol:           symbol,
		Name:             name,
		PortfolioHistory: []model.PortfolioEntry{},
	}

	if outcome.Empty() {
		return result
	}

	finalValue := outcome.Values[len(outcome.Values)-1].Value
	lastDate := outcome.Values[len(outcome.Values)-1].Date

	// Elapsed years run from the first capital deployment, which for DCA
	// is the first executed purchase rather than the start of the series.
	years := lastDate.Sub(outcome.Start).Hours() / 24 / daysPerYear

	values := make([]float64, len(outcome.Values))
	for i, p := range outcome.Values {
		values[i] = p.Value
	}

	result.FinalValue = round2(finalValue)
	result.TotalInvested = round2(outcome.TotalInvested)
	result.TotalReturn = round2(quant.TotalReturn(outcome.TotalInvested, finalValue) * 100)
	result.CAGR = round2(quant.CAGR(outcome.TotalInvested, finalValue, years) * 100)
	result.MaxDrawdown = round2(quant.MaxDrawdown(values) * 100)
	result.Volatility = round2(calc.Volatility(outcome.Returns) * 100)
	result.SharpeRatio = round2(calc.SharpeRatio(outcome.Returns))
	result.PortfolioHistory = SampleHistory(outcome.Values)

	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
