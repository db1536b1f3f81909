package data

import (
	"context"
	"time"

	"github.com/Richie1129/vibe-backtester/internal/infrastructure"
	"github.com/Richie1129/vibe-backtester/internal/model"

	"go.uber.org/zap"
)

// barFetcher is what the Service needs from the provider.
type barFetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error)
	FetchQuote(ctx context.Context, symbol string) (*model.StockDetail, error)
}

// cacheCoverageSlack absorbs weekends and market holidays at the edges
// of a requested range: cached bars count as covering the range when
// the boundary bars fall within this many days of the requested dates.
const cacheCoverageSlack = 5 * 24 * time.Hour

// barCache is what the Service needs from the store. Nil-able in tests.
type barCache interface {
	LoadBars(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error)
	SaveBars(ctx context.Context, bars []model.PriceBar) error
}

// Service is a fetch-through cache over the market data provider. It is
// the engine's DataSource: history comes from the local store when
// available, otherwise from the provider, with the fetched series written
// back best-effort.
type Service struct {
	provider barFetcher
	cache    barCache
	logger   *zap.Logger
}

func NewService(provider barFetcher, cache barCache, logger *zap.Logger) *Service {
	return &Service{provider: provider, cache: cache, logger: logger}
}

func (s *Service) GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error) {
	if s.cache != nil {
		bars, err := s.cache.LoadBars(ctx, symbol, start, end)
		if err != nil {
			s.logger.Warn("price cache read failed", zap.String("symbol", symbol), zap.Error(err))
		} else if coversRange(bars, start, end) {
			infrastructure.PriceCacheHits.Inc()
			return bars, nil
		}
	}
	infrastructure.PriceCacheMisses.Inc()

	bars, err := s.provider.FetchDailyBars(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveBars(ctx, bars); err != nil {
			s.logger.Warn("price cache write failed", zap.String("symbol", symbol), zap.Error(err))
		}
	}
	return bars, nil
}

// coversRange reports whether cached bars actually span the requested
// window. A partial subset left behind by an earlier, narrower request
// must not short-circuit the provider, or the simulation would run on
// a silently truncated series.
func coversRange(bars []model.PriceBar, start, end time.Time) bool {
	if len(bars) == 0 {
		return false
	}
	return bars[0].Date.Sub(start) <= cacheCoverageSlack &&
		end.Sub(bars[len(bars)-1].Date) <= cacheCoverageSlack
}

func (s *Service) GetDetail(ctx context.Context, symbol string) (*model.StockDetail, error) {
	return s.provider.FetchQuote(ctx, symbol)
}

func (s *Service) Search(query string) []model.StockInfo {
	return SearchDirectory(query)
}

func (s *Service) StockName(symbol string) string {
	return DirectoryName(symbol)
}
