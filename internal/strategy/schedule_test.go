package strategy

import (
	"testing"
	"time"

	"github.com/Richie1129/vibe-backtester/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// barsOn builds a bar series on the given dates with the given closes.
func barsOn(t *testing.T, dates []string, closes []float64) []model.PriceBar {
	t.Helper()
	if len(dates) != len(closes) {
		t.Fatalf("barsOn: %d dates but %d closes", len(dates), len(closes))
	}
	bars := make([]model.PriceBar, len(dates))
	for i, d := range dates {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			t.Fatalf("bad date %q: %v", d, err)
		}
		bars[i] = model.PriceBar{
			Symbol: "TEST",
			Date:   day,
			Close:  decimal.NewFromFloat(closes[i]),
		}
	}
	return bars
}

// tradingBars builds a weekday-only series of len(closes) bars starting
// on or after the given date.
func tradingBars(t *testing.T, start string, closes ...float64) []model.PriceBar {
	t.Helper()
	day, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatalf("bad date %q: %v", start, err)
	}
	bars := make([]model.PriceBar, 0, len(closes))
	for _, c := range closes {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		bars = append(bars, model.PriceBar{
			Symbol: "TEST",
			Date:   day,
			Close:  decimal.NewFromFloat(c),
		})
		day = day.AddDate(0, 0, 1)
	}
	return bars
}

func TestInvestmentDatesMonthly(t *testing.T) {
	// Jan 30 (Mon) through Feb 3 2023, weekdays only.
	bars := barsOn(t,
		[]string{"2023-01-30", "2023-01-31", "2023-02-01", "2023-02-02", "2023-02-03"},
		[]float64{100, 101, 102, 103, 104},
	)

	dates := InvestmentDates(bars, CadenceMonthly)
	assert.Len(t, dates, 2)
	assert.Equal(t, "2023-01-30", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2023-02-01", dates[1].Format("2006-01-02"))
}

func TestInvestmentDatesMonthlySkipsFirstCalendarDay(t *testing.T) {
	// March 2023 opens on a Wednesday; the first trading day is the
	// first bar in that month, whatever its calendar day.
	bars := barsOn(t,
		[]string{"2023-02-27", "2023-03-03", "2023-03-06"},
		[]float64{100, 101, 102},
	)

	dates := InvestmentDates(bars, CadenceMonthly)
	assert.Len(t, dates, 2)
	assert.Equal(t, "2023-03-03", dates[1].Format("2006-01-02"))
}

func TestInvestmentDatesWeekly(t *testing.T) {
	// Two full weeks; the second week starts Tuesday because Monday is
	// missing from the calendar.
	bars := barsOn(t,
		[]string{"2023-01-30", "2023-01-31", "2023-02-01", "2023-02-07", "2023-02-08"},
		[]float64{100, 101, 102, 103, 104},
	)

	dates := InvestmentDates(bars, CadenceWeekly)
	assert.Len(t, dates, 2)
	assert.Equal(t, "2023-01-30", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2023-02-07", dates[1].Format("2006-01-02"))
}

func TestInvestmentDatesWeekSpansMonths(t *testing.T) {
	// Mon Jan 30 and Wed Feb 1 share a Monday-anchored week, so weekly
	// cadence buys once while monthly cadence buys twice.
	bars := barsOn(t,
		[]string{"2023-01-30", "2023-02-01"},
		[]float64{100, 101},
	)

	assert.Len(t, InvestmentDates(bars, CadenceWeekly), 1)
	assert.Len(t, InvestmentDates(bars, CadenceMonthly), 2)
}

func TestInvestmentDatesEmpty(t *testing.T) {
	assert.Empty(t, InvestmentDates(nil, CadenceMonthly))
	assert.Empty(t, InvestmentDates(nil, CadenceWeekly))
}
