package engine

import (
	"testing"
	"time"

	"github.com/Richie1129/vibe-backtester/internal/strategy"

	"github.com/stretchr/testify/assert"
)

func dailyPoints(t *testing.T, start string, values []float64) []strategy.PortfolioPoint {
	t.Helper()
	day, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatalf("bad date %q: %v", start, err)
	}
	points := make([]strategy.PortfolioPoint, len(values))
	for i, v := range values {
		points[i] = strategy.PortfolioPoint{Date: day, Value: v}
		day = day.AddDate(0, 0, 1)
	}
	return points
}

func TestSampleHistoryShortSeriesPassesThrough(t *testing.T) {
	points := dailyPoints(t, "2023-01-02", []float64{100, 101.239, 102, 99.5, 103})

	history := SampleHistory(points)
	assert.Len(t, history, 5)
	assert.Equal(t, "2023-01-02", history[0].Date)
	assert.Equal(t, 100.0, history[0].Value)
	// Values are rounded, dates formatted; nothing is dropped.
	assert.Equal(t, 101.24, history[1].Value)
	assert.Equal(t, "2023-01-06", history[4].Date)
	assert.Equal(t, 103.0, history[4].Value)
}

func TestSampleHistoryLongSeriesMonthEnds(t *testing.T) {
	values := make([]float64, 150)
	for i := range values {
		values[i] = 1000 + float64(i)
	}
	points := dailyPoints(t, "2020-01-01", values)

	history := SampleHistory(points)

	// First and last points are always preserved exactly.
	assert.Equal(t, "2020-01-01", history[0].Date)
	assert.Equal(t, 1000.0, history[0].Value)
	assert.Equal(t, "2020-05-29", history[len(history)-1].Date)
	assert.Equal(t, 1149.0, history[len(history)-1].Value)

	// One entry per calendar month end in between.
	expected := []string{"2020-01-01", "2020-01-31", "2020-02-29", "2020-03-31", "2020-04-30", "2020-05-29"}
	dates := make([]string, len(history))
	for i, e := range history {
		dates[i] = e.Date
	}
	assert.Equal(t, expected, dates)
}

func TestSampleHistoryBoundedSize(t *testing.T) {
	values := make([]float64, 2600) // roughly a decade of calendar days
	for i := range values {
		values[i] = float64(i)
	}
	points := dailyPoints(t, "2015-01-01", values)

	history := SampleHistory(points)
	assert.Less(t, len(history), len(points)/10)
	assert.Equal(t, points[0].Date.Format("2006-01-02"), history[0].Date)
	assert.Equal(t, points[len(points)-1].Date.Format("2006-01-02"), history[len(history)-1].Date)

	// Strictly increasing dates, no duplicates.
	for i := 1; i < len(history); i++ {
		assert.Less(t, history[i-1].Date, history[i].Date)
	}
}

func TestSampleHistoryEmpty(t *testing.T) {
	assert.Empty(t, SampleHistory(nil))
}
