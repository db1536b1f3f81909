package engine

import "github.com/Richie1129/vibe-backtester/internal/model"

// Compare ranks a batch of per-symbol results. Ties keep the first
// result encountered, so input order is preserved. A zero-volatility
// result is excluded from the risk ranking: it signals a degenerate
// single-point simulation, not genuinely riskless performance. An empty
// batch yields the zero summary.
func Compare(results []model.BacktestResult) model.Comparison {
	var summary model.Comparison
	if len(results) == 0 {
		return summary
	}

	bestReturn := 0
	bestSharpe := 0
	lowestRisk := -1

	for i, r := range results {
		if r.TotalReturn > results[bestReturn].TotalReturn {
			bestReturn = i
		}
		if r.SharpeRatio > results[bestSharpe].SharpeRatio {
			bestSharpe = i
		}
		if r.Volatility > 0 && (lowestRisk < 0 || r.Volatility < results[lowestRisk].Volatility) {
			lowestRisk = i
		}
	}

	summary.BestPerformer = results[bestReturn].Symbol
	summary.HighestReturn = results[bestReturn].TotalReturn
	summary.BestSharpe = results[bestSharpe].Symbol
	if lowestRisk >= 0 {
		symbol := results[lowestRisk].Symbol
		summary.LowestRisk = &symbol
	}

	return summary
}
