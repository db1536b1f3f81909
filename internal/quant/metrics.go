package quant

import "math"

// Params holds the annualization policy used by the risk metrics.
// They are policy constants, not derived values, so they are injected
// from configuration instead of being hard-coded at call sites.
type Params struct {
	TradingDaysPerYear float64 // annualization base, 252 by convention
	RiskFreeRate       float64 // annualized risk-free rate used by Sharpe
	MinStdDev          float64 // below this, std dev is treated as zero
}

func DefaultParams() Params {
	return Params{
		TradingDaysPerYear: 252,
		RiskFreeRate:       0.02,
		MinStdDev:          1e-10,
	}
}

// Calculator computes risk/return statistics over value and return series.
// All methods are pure; no state is kept besides the params.
type Calculator struct {
	params Params
}

func NewCalculator(params Params) *Calculator {
	return &Calculator{params: params}
}

// TotalReturn returns (final-initial)/initial as a fraction.
// A non-positive initial value yields 0.
func TotalReturn(initial, final float64) float64 {
	if initial <= 0 {
		return 0
	}
	return (final - initial) / initial
}

// CAGR returns the compound annual growth rate as a fraction.
// Zero years or non-positive initial value yields 0; a non-positive
// final value yields -1 (total loss).
func CAGR(initial, final, years float64) float64 {
	if years <= 0 || initial <= 0 {
		return 0
	}
	if final <= 0 {
		return -1
	}
	return math.Pow(final/initial, 1/years) - 1
}

// DailyReturns converts a price series into period-over-period
// percentage changes. The first observation has no prior value and is
// dropped, so an empty or single-element series yields an empty result.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

// MaxDrawdown returns the largest peak-to-trough decline as a negative
// fraction. A monotonically non-decreasing or empty series yields 0;
// the result is never positive.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	peak := values[0]
	maxDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		dd := (v - peak) / peak
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// Volatility returns the annualized sample standard deviation of the
// return series. Series with fewer than two observations, or a standard
// deviation below MinStdDev (floating-point noise), yield 0.
func (c *Calculator) Volatility(returns []float64) float64 {
	std := sampleStdDev(returns)
	if std < c.params.MinStdDev {
		return 0
	}
	return std * math.Sqrt(c.params.TradingDaysPerYear)
}

// SharpeRatio returns the annualized excess return over the risk-free
// rate per unit of volatility. Zero volatility yields exactly 0 by
// policy, guarding the division rather than surfacing NaN.
func (c *Calculator) SharpeRatio(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	volatility := c.Volatility(returns)
	if volatility == 0 {
		return 0
	}
	annualReturn := mean(returns) * c.params.TradingDaysPerYear
	return (annualReturn - c.params.RiskFreeRate) / volatility
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdDev uses the n-1 denominator; fewer than two observations
// yield 0.
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		diff := x - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}
