package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar 代表一根日K线（来自行情数据源的 OHLCV）
// 回测核心只使用 Close，其余字段随数据源一并缓存。
type PriceBar struct {
	Symbol string          `json:"symbol" db:"symbol"`
	Date   time.Time       `json:"date" db:"bar_date"`
	Open   decimal.Decimal `json:"open" db:"open"`
	High   decimal.Decimal `json:"high" db:"high"`
	Low    decimal.Decimal `json:"low" db:"low"`
	Close  decimal.Decimal `json:"close" db:"close"`
	Volume decimal.Decimal `json:"volume" db:"volume"`
}

// StockInfo 股票目录条目（用于搜索）
type StockInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// StockDetail 单只股票的详细信息
type StockDetail struct {
	Symbol       string           `json:"symbol"`
	Name         string           `json:"name"`
	CurrentPrice *decimal.Decimal `json:"current_price"`
	Currency     string           `json:"currency"`
	Exchange     string           `json:"exchange"`
}
