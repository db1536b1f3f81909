package engine

import (
	"time"

	"github.com/Richie1129/vibe-backtester/internal/model"
	"github.com/Richie1129/vibe-backtester/internal/strategy"
)

// Series at or below this size are emitted verbatim.
const historySampleLimit = 100

const dateLayout = "2006-01-02"

// SampleHistory compresses a daily portfolio series into a bounded,
// chronologically anchored sequence for the response payload. Short
// series pass through unchanged; longer series keep the first point,
// the last observation of each calendar month, and the true final
// point, so the output always starts and ends on the series' real
// boundary dates.
func SampleHistory(values []strategy.PortfolioPoint) []model.PortfolioEntry {
	history := make([]model.PortfolioEntry, 0, len(values))
	if len(values) == 0 {
		return history
	}

	if len(values) <= historySampleLimit {
		for _, p := range values {
			history = append(history, entry(p))
		}
		return history
	}

	first := values[0]
	history = append(history, entry(first))

	for i, p := range values {
		if i+1 < len(values) && sameMonth(p.Date, values[i+1].Date) {
			continue
		}
		// p is the last observation of its calendar month.
		if p.Date.Equal(first.Date) {
			continue
		}
		history = append(history, entry(p))
	}

	last := values[len(values)-1]
	if history[len(history)-1].Date != last.Date.Format(dateLayout) {
		history = append(history, entry(last))
	}

	return history
}

func entry(p strategy.PortfolioPoint) model.PortfolioEntry {
	return model.PortfolioEntry{
		Date:  p.Date.Format(dateLayout),
		Value: round2(p.Value),
	}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
