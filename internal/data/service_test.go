package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Richie1129/vibe-backtester/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubProvider struct {
	bars    []model.PriceBar
	err     error
	fetches int
}

func (s *stubProvider) FetchDailyBars(context.Context, string, time.Time, time.Time) ([]model.PriceBar, error) {
	s.fetches++
	return s.bars, s.err
}

func (s *stubProvider) FetchQuote(context.Context, string) (*model.StockDetail, error) {
	return &model.StockDetail{Symbol: "STUB"}, nil
}

type stubCache struct {
	bars    []model.PriceBar
	loadErr error
	saved   [][]model.PriceBar
}

func (s *stubCache) LoadBars(context.Context, string, time.Time, time.Time) ([]model.PriceBar, error) {
	return s.bars, s.loadErr
}

func (s *stubCache) SaveBars(_ context.Context, bars []model.PriceBar) error {
	s.saved = append(s.saved, bars)
	return nil
}

func someBars(n int) []model.PriceBar {
	bars := make([]model.PriceBar, n)
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.PriceBar{Symbol: "SPY", Date: day, Close: decimal.NewFromInt(100)}
		day = day.AddDate(0, 0, 1)
	}
	return bars
}

func TestServiceCacheHitSkipsProvider(t *testing.T) {
	provider := &stubProvider{}
	cache := &stubCache{bars: someBars(5)} // 2023-01-02 .. 2023-01-06
	svc := NewService(provider, cache, zap.NewNop())

	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC)

	bars, err := svc.GetHistory(context.Background(), "SPY", start, end)
	assert.NoError(t, err)
	assert.Len(t, bars, 5)
	assert.Zero(t, provider.fetches)
}

func TestServicePartialCacheConsultsProvider(t *testing.T) {
	// The store holds only the bars of an earlier, narrower request;
	// a wider request must go back to the provider for the full range.
	provider := &stubProvider{bars: someBars(250)} // 2023-01-02 .. 2023-09-08
	cache := &stubCache{bars: someBars(20)}        // 2023-01-02 .. 2023-01-21
	svc := NewService(provider, cache, zap.NewNop())

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 9, 8, 0, 0, 0, 0, time.UTC)

	bars, err := svc.GetHistory(context.Background(), "SPY", start, end)
	assert.NoError(t, err)
	assert.Len(t, bars, 250)
	assert.Equal(t, 1, provider.fetches)
	assert.Len(t, cache.saved, 1)
}

func TestServiceCacheMissingRangeStart(t *testing.T) {
	provider := &stubProvider{bars: someBars(10)}
	cache := &stubCache{bars: someBars(10)[5:]} // starts 2023-01-07
	svc := NewService(provider, cache, zap.NewNop())

	start := time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 11, 0, 0, 0, 0, time.UTC)

	bars, err := svc.GetHistory(context.Background(), "SPY", start, end)
	assert.NoError(t, err)
	assert.Len(t, bars, 10)
	assert.Equal(t, 1, provider.fetches)
}

func TestServiceCacheMissFetchesAndWritesBack(t *testing.T) {
	provider := &stubProvider{bars: someBars(7)}
	cache := &stubCache{}
	svc := NewService(provider, cache, zap.NewNop())

	bars, err := svc.GetHistory(context.Background(), "SPY", time.Now().AddDate(0, -1, 0), time.Now())
	assert.NoError(t, err)
	assert.Len(t, bars, 7)
	assert.Equal(t, 1, provider.fetches)
	assert.Len(t, cache.saved, 1)
}

func TestServiceCacheReadFailureFallsThrough(t *testing.T) {
	provider := &stubProvider{bars: someBars(3)}
	cache := &stubCache{loadErr: errors.New("connection refused")}
	svc := NewService(provider, cache, zap.NewNop())

	bars, err := svc.GetHistory(context.Background(), "SPY", time.Now().AddDate(0, -1, 0), time.Now())
	assert.NoError(t, err)
	assert.Len(t, bars, 3)
}

func TestServiceProviderErrorPropagates(t *testing.T) {
	provider := &stubProvider{err: ErrNoData}
	svc := NewService(provider, &stubCache{}, zap.NewNop())

	_, err := svc.GetHistory(context.Background(), "NOPE", time.Now().AddDate(0, -1, 0), time.Now())
	assert.ErrorIs(t, err, ErrNoData)
}
