package strategy

import (
	"time"

	"github.com/Richie1129/vibe-backtester/internal/model"
)

// InvestmentDates returns the purchase schedule for a cadence: the first
// trading day of each calendar month, or of each week anchored on Monday,
// as implied by the bar series itself. The series defines the trading
// calendar, so every returned date is guaranteed to be a trading day.
// An empty series yields an empty schedule.
func InvestmentDates(bars []model.PriceBar, cadence Cadence) []time.Time {
	dates := make([]time.Time, 0)
	var lastPeriod string

	for _, bar := range bars {
		period := periodKey(bar.Date, cadence)
		if period != lastPeriod {
			dates = append(dates, bar.Date)
			lastPeriod = period
		}
	}
	return dates
}

func periodKey(date time.Time, cadence Cadence) string {
	if cadence == CadenceWeekly {
		return weekStart(date).Format("2006-01-02")
	}
	return date.Format("2006-01")
}

// weekStart returns the Monday on or before the given date.
func weekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}
