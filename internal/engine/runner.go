package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Richie1129/vibe-backtester/internal/infrastructure"
	"github.com/Richie1129/vibe-backtester/internal/model"
	"github.com/Richie1129/vibe-backtester/internal/quant"
	"github.com/Richie1129/vibe-backtester/internal/strategy"

	"go.uber.org/zap"
)

// Fewer observations than this cannot support a meaningful simulation.
const minObservations = 5

const maxRangeDays = 365 * 20
const maxSymbols = 10

// DataSource supplies daily price history for a symbol. The provider
// either returns a non-empty series or an explicit error; the runner
// never simulates on a silently degraded series.
type DataSource interface {
	GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error)
	StockName(symbol string) string
}

// Request is a validated backtest configuration for a batch of symbols.
type Request struct {
	Symbols  []string
	Strategy string
	Amount   float64
	Cadence  strategy.Cadence
	Start    time.Time
	End      time.Time
}

// Validate rejects malformed configurations before any simulation begins.
func (r Request) Validate() error {
	if len(r.Symbols) == 0 {
		return &InvalidConfigError{Reason: "at least one symbol is required"}
	}
	if len(r.Symbols) > maxSymbols {
		return &InvalidConfigError{Reason: fmt.Sprintf("at most %d symbols per request", maxSymbols)}
	}
	if r.Amount <= 0 {
		return &InvalidConfigError{Reason: "amount must be positive"}
	}
	if !r.End.After(r.Start) {
		return &InvalidConfigError{Reason: "start date must be before end date"}
	}
	if r.End.Sub(r.Start) > maxRangeDays*24*time.Hour {
		return &InvalidConfigError{Reason: "date range must not exceed 20 years"}
	}
	if _, err := strategy.NewStrategy(r.Strategy, r.Amount, r.Cadence); err != nil {
		return &InvalidConfigError{Reason: err.Error()}
	}
	return nil
}

// Runner evaluates a batch of symbols against one investment
// configuration. Per-symbol simulations share no state, so they are
// dispatched across a bounded pool of workers and collected back in
// input order.
type Runner struct {
	data    DataSource
	calc    *quant.Calculator
	workers int
	logger  *zap.Logger
}

func NewRunner(data DataSource, calc *quant.Calculator, workers int, logger *zap.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		data:    data,
		calc:    calc,
		workers: workers,
		logger:  logger,
	}
}

// Run simulates every symbol in the request and ranks the outcomes.
// Configuration problems fail the whole request immediately; per-symbol
// data problems are collected and only surface as a BatchError when no
// symbol could be simulated at all.
func (r *Runner) Run(ctx context.Context, req Request) ([]model.BacktestResult, model.Comparison, error) {
	if err := req.Validate(); err != nil {
		return nil, model.Comparison{}, err
	}

	started := time.Now()
	defer func() {
		infrastructure.BacktestDuration.Observe(time.Since(started).Seconds())
	}()

	type job struct {
		idx    int
		symbol string
	}

	results := make([]*model.BacktestResult, len(req.Symbols))
	failures := make([]*SymbolError, len(req.Symbols))

	jobs := make(chan job)
	var wg sync.WaitGroup

	workers := r.workers
	if workers > len(req.Symbols) {
		workers = len(req.Symbols)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				result, err := r.runSymbol(ctx, req, j.symbol)
				if err != nil {
					failures[j.idx] = &SymbolError{Symbol: j.symbol, Err: err}
					reason := "fetch_error"
					if errors.Is(err, ErrInsufficientData) {
						reason = "insufficient_data"
					}
					infrastructure.BacktestFailures.WithLabelValues(reason).Inc()
					r.logger.Warn("symbol skipped",
						zap.String("symbol", j.symbol),
						zap.Error(err),
					)
					continue
				}
				results[j.idx] = result
				infrastructure.BacktestRuns.WithLabelValues(req.Strategy).Inc()
			}
		}()
	}

	for i, symbol := range req.Symbols {
		jobs <- job{idx: i, symbol: symbol}
	}
	close(jobs)
	wg.Wait()

	ordered := make([]model.BacktestResult, 0, len(req.Symbols))
	errs := make([]*SymbolError, 0)
	for i := range req.Symbols {
		if results[i] != nil {
			ordered = append(ordered, *results[i])
		} else if failures[i] != nil {
			errs = append(errs, failures[i])
		}
	}

	if len(ordered) == 0 {
		return nil, model.Comparison{}, &BatchError{Errors: errs}
	}

	return ordered, Compare(ordered), nil
}

func (r *Runner) runSymbol(ctx context.Context, req Request, symbol string) (*model.BacktestResult, error) {
	bars, err := r.data.GetHistory(ctx, symbol, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	if len(bars) < minObservations {
		return nil, fmt.Errorf("%w: got %d observations, need %d", ErrInsufficientData, len(bars), minObservations)
	}

	// Strategies are stateless transforms; a fresh instance per symbol
	// keeps the simulations independent. The type was already resolved
	// by Validate, so construction cannot fail here.
	strat, err := strategy.NewStrategy(req.Strategy, req.Amount, req.Cadence)
	if err != nil {
		return nil, err
	}

	outcome := strat.Simulate(bars)
	result := BuildResult(symbol, r.data.StockName(symbol), outcome, r.calc)
	return &result, nil
}
