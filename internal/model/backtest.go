package model

import "time"

// PortfolioEntry 投资组合历史中的一个采样点
// Value 已按展示规则四舍五入到小数点后两位。
type PortfolioEntry struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// BacktestResult 单只股票的回测结果报告
// 百分比指标（TotalReturn/CAGR/MaxDrawdown/Volatility）以百分数表示并
// 四舍五入到两位小数；SharpeRatio 为比率本身。构造后不再修改。
type BacktestResult struct {
	Symbol           string           `json:"symbol"`
	Name             string           `json:"name"`
	TotalReturn      float64          `json:"total_return"`
	CAGR             float64          `json:"cagr"`
	MaxDrawdown      float64          `json:"max_drawdown"`
	Volatility       float64          `json:"volatility"`
	SharpeRatio      float64          `json:"sharpe_ratio"`
	FinalValue       float64          `json:"final_value"`
	TotalInvested    float64          `json:"total_invested"`
	PortfolioHistory []PortfolioEntry `json:"portfolio_history"`
}

// Comparison 一批回测结果的比较摘要
// LowestRisk 在没有任何正波动率结果时为 nil（零波动率通常意味着退化的
// 单点模拟，而不是真正的无风险表现）。
type Comparison struct {
	BestPerformer string  `json:"best_performer"`
	HighestReturn float64 `json:"highest_return"`
	LowestRisk    *string `json:"lowest_risk"`
	BestSharpe    string  `json:"best_sharpe"`
}

// BacktestRun 持久化的一次回测请求记录
type BacktestRun struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Strategy  string    `json:"strategy" db:"strategy"`
	Symbols   []string  `json:"symbols" db:"symbols"`
	Amount    float64   `json:"amount" db:"amount"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
