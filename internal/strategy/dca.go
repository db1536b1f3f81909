package strategy

import (
	"github.com/Richie1129/vibe-backtester/internal/model"
	"github.com/Richie1129/vibe-backtester/internal/quant"
)

// DCA invests a fixed amount on every scheduled trading day (first
// trading day of each month or week). Shares accumulate as a step
// function jumping only on purchase dates; they are never sold.
type DCA struct {
	amount  float64 // per-period amount
	cadence Cadence
}

func NewDCA(amount float64, cadence Cadence) *DCA {
	return &DCA{amount: amount, cadence: cadence}
}

func (s *DCA) Name() string {
	return "dca"
}

func (s *DCA) Simulate(bars []model.PriceBar) *Outcome {
	if len(bars) == 0 || s.amount <= 0 {
		return emptyOutcome()
	}

	schedule := InvestmentDates(bars, s.cadence)

	var (
		shares    float64
		invested  float64
		startIdx  = -1
		scheduled = 0
	)

	values := make([]PortfolioPoint, len(bars))
	for i, bar := range bars {
		// A schedule date missing from the calendar is skipped, never
		// substituted with a nearby day. The schedule is derived from
		// the bars themselves, so in practice every date matches.
		for scheduled < len(schedule) && schedule[scheduled].Before(bar.Date) {
			scheduled++
		}
		if scheduled < len(schedule) && bar.Date.Equal(schedule[scheduled]) {
			shares += s.amount / bar.Close.InexactFloat64()
			invested += s.amount
			if startIdx < 0 {
				startIdx = i
			}
			scheduled++
		}
		values[i] = PortfolioPoint{Date: bar.Date, Value: shares * bar.Close.InexactFloat64()}
	}

	if invested == 0 {
		return emptyOutcome()
	}

	// Return observations start at the first executed purchase; days
	// before any capital is deployed contribute nothing.
	closes := make([]float64, 0, len(bars)-startIdx)
	for _, bar := range bars[startIdx:] {
		closes = append(closes, bar.Close.InexactFloat64())
	}

	return &Outcome{
		Values:        values,
		Returns:       quant.DailyReturns(closes),
		TotalInvested: invested,
		Start:         bars[startIdx].Date,
	}
}
