package data

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Richie1129/vibe-backtester/internal/infrastructure"
	"github.com/Richie1129/vibe-backtester/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNoData is the provider's explicit "no data" signal for a symbol.
var ErrNoData = errors.New("no data for symbol")

// Provider fetches daily OHLCV bars from a Yahoo-style chart endpoint.
type Provider struct {
	client *resty.Client
	logger *zap.Logger
}

func NewProvider(baseURL string, logger *zap.Logger) *Provider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", "vibe-backtester/1.0")

	return &Provider{client: client, logger: logger}
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol             string   `json:"symbol"`
		Currency           string   `json:"currency"`
		ExchangeName       string   `json:"exchangeName"`
		ShortName          string   `json:"shortName"`
		RegularMarketPrice *float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// FetchDailyBars returns the daily bars for a symbol over [start, end),
// ordered by date. Days with a missing or non-positive close are dropped:
// the series must define a clean trading calendar for the backtest.
func (p *Provider) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error) {
	began := time.Now()
	defer func() {
		infrastructure.DataFetchLatency.WithLabelValues("chart").Observe(time.Since(began).Seconds())
	}()

	var body chartResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(start.Unix(), 10),
			"period2":  strconv.FormatInt(end.Unix(), 10),
			"interval": "1d",
		}).
		SetResult(&body).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("chart request for %s: %w", symbol, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNoData
	}
	if resp.IsError() {
		return nil, fmt.Errorf("chart request for %s: status %d", symbol, resp.StatusCode())
	}
	if body.Chart.Error != nil {
		p.logger.Warn("provider returned error",
			zap.String("symbol", symbol),
			zap.String("code", body.Chart.Error.Code),
		)
		return nil, ErrNoData
	}
	if len(body.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	result := body.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 || len(result.Timestamp) == 0 {
		return nil, ErrNoData
	}
	quote := result.Indicators.Quote[0]

	bars := make([]model.PriceBar, 0, len(result.Timestamp))
	var lastDate time.Time
	for i, ts := range result.Timestamp {
		closePx := at(quote.Close, i)
		if closePx == nil || *closePx <= 0 {
			continue
		}
		date := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		// One observation per trading day; duplicates collapse to the first.
		if !lastDate.IsZero() && !date.After(lastDate) {
			continue
		}
		lastDate = date

		bars = append(bars, model.PriceBar{
			Symbol: symbol,
			Date:   date,
			Open:   decimalAt(quote.Open, i),
			High:   decimalAt(quote.High, i),
			Low:    decimalAt(quote.Low, i),
			Close:  decimal.NewFromFloat(*closePx),
			Volume: decimalAt(quote.Volume, i),
		})
	}

	if len(bars) == 0 {
		return nil, ErrNoData
	}
	return bars, nil
}

// FetchQuote returns metadata and the latest price for a symbol using a
// one-day chart request.
func (p *Provider) FetchQuote(ctx context.Context, symbol string) (*model.StockDetail, error) {
	began := time.Now()
	defer func() {
		infrastructure.DataFetchLatency.WithLabelValues("quote").Observe(time.Since(began).Seconds())
	}()

	var body chartResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"range":    "1d",
			"interval": "1d",
		}).
		SetResult(&body).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("quote request for %s: %w", symbol, err)
	}
	if resp.IsError() || body.Chart.Error != nil || len(body.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	meta := body.Chart.Result[0].Meta

	detail := &model.StockDetail{
		Symbol:   symbol,
		Name:     meta.ShortName,
		Currency: meta.Currency,
		Exchange: meta.ExchangeName,
	}
	if detail.Name == "" {
		detail.Name = DirectoryName(symbol)
	}
	if detail.Currency == "" {
		detail.Currency = "USD"
	}
	if detail.Exchange == "" {
		detail.Exchange = "Unknown"
	}
	if meta.RegularMarketPrice != nil {
		price := decimal.NewFromFloat(*meta.RegularMarketPrice)
		detail.CurrentPrice = &price
	}
	return detail, nil
}

func at(xs []*float64, i int) *float64 {
	if i >= len(xs) {
		return nil
	}
	return xs[i]
}

func decimalAt(xs []*float64, i int) decimal.Decimal {
	v := at(xs, i)
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
