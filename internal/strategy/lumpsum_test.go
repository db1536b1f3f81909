package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLumpSumSimulate(t *testing.T) {
	bars := tradingBars(t, "2023-01-02", 100, 110, 120, 90, 150)
	outcome := NewLumpSum(10000).Simulate(bars)

	assert.False(t, outcome.Empty())
	assert.Equal(t, 10000.0, outcome.TotalInvested)
	assert.Equal(t, bars[0].Date, outcome.Start)
	assert.Len(t, outcome.Values, 5)

	// 100 shares bought at 100, marked to market daily.
	assert.InDelta(t, 10000, outcome.Values[0].Value, 1e-9)
	assert.InDelta(t, 11000, outcome.Values[1].Value, 1e-9)
	assert.InDelta(t, 9000, outcome.Values[3].Value, 1e-9)
	assert.InDelta(t, 15000, outcome.Values[4].Value, 1e-9)

	// One return per day after the first.
	assert.Len(t, outcome.Returns, 4)
	assert.InDelta(t, 0.10, outcome.Returns[0], 1e-9)
}

func TestLumpSumFlatPrices(t *testing.T) {
	bars := tradingBars(t, "2023-01-02", 50, 50, 50, 50, 50, 50)
	outcome := NewLumpSum(1000).Simulate(bars)

	for _, p := range outcome.Values {
		assert.InDelta(t, 1000, p.Value, 1e-9)
	}
	for _, r := range outcome.Returns {
		assert.Equal(t, 0.0, r)
	}
}

func TestLumpSumDegenerateInputs(t *testing.T) {
	// No data or no capital yields the documented empty outcome, not an
	// error.
	assert.True(t, NewLumpSum(10000).Simulate(nil).Empty())
	assert.True(t, NewLumpSum(0).Simulate(tradingBars(t, "2023-01-02", 100, 101)).Empty())
	assert.True(t, NewLumpSum(-500).Simulate(tradingBars(t, "2023-01-02", 100, 101)).Empty())

	empty := NewLumpSum(10000).Simulate(nil)
	assert.Empty(t, empty.Values)
	assert.Empty(t, empty.Returns)
	assert.Equal(t, 0.0, empty.TotalInvested)
}
