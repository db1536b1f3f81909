package data

import (
	"context"
	"fmt"
	"time"

	"github.com/Richie1129/vibe-backtester/internal/model"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Store persists fetched price bars and backtest runs in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) LoadBars(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT symbol, bar_date, open, high, low, close, volume
		FROM price_bars
		WHERE symbol = $1 AND bar_date >= $2 AND bar_date < $3
		ORDER BY bar_date ASC`,
		symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("query price bars: %w", err)
	}
	defer rows.Close()

	var bars []model.PriceBar
	for rows.Next() {
		var b model.PriceBar
		if err := rows.Scan(&b.Symbol, &b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan price bar: %w", err)
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// SaveBars upserts a fetched series. Dates are unique per symbol, so a
// refetch of an overlapping range is idempotent.
func (s *Store) SaveBars(ctx context.Context, bars []model.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, b := range bars {
		batch.Queue(`
			INSERT INTO price_bars (symbol, bar_date, open, high, low, close, volume)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (symbol, bar_date) DO NOTHING`,
			b.Symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range bars {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert price bar: %w", err)
		}
	}
	return nil
}

func (s *Store) SaveRun(ctx context.Context, run *model.BacktestRun) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO backtest_runs (user_id, strategy, symbols, amount, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		run.UserID, run.Strategy, run.Symbols, run.Amount, run.StartDate, run.EndDate,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert backtest run: %w", err)
	}
	return nil
}
