package strategy

import (
	"time"

	"github.com/Richie1129/vibe-backtester/internal/model"
)

// Cadence 定投频率
type Cadence string

const (
	CadenceMonthly Cadence = "monthly"
	CadenceWeekly  Cadence = "weekly"
)

// PortfolioPoint 模拟过程中某个交易日的组合市值
type PortfolioPoint struct {
	Date  time.Time
	Value float64
}

// Outcome is the raw simulation output before any metric is derived.
// Returns holds the observations the volatility/Sharpe leg is computed
// from; for DCA it starts at the first executed purchase, not at the
// start of the price series. A degenerate simulation (no data, no
// deployable capital) yields the zero Outcome with empty slices.
type Outcome struct {
	Values        []PortfolioPoint
	Returns       []float64
	TotalInvested float64
	Start         time.Time // first capital deployment date
}

func emptyOutcome() *Outcome {
	return &Outcome{
		Values:  []PortfolioPoint{},
		Returns: []float64{},
	}
}

// Empty reports whether the simulation deployed no capital at all.
func (o *Outcome) Empty() bool {
	return o.TotalInvested == 0 || len(o.Values) == 0
}

// Strategy simulates an investment plan against a daily price series.
// Implementations are pure: the same bars always produce the same
// Outcome, and no state survives between calls.
type Strategy interface {
	Name() string
	Simulate(bars []model.PriceBar) *Outcome
}
