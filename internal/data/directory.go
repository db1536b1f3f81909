package data

import (
	"strings"

	"github.com/Richie1129/vibe-backtester/internal/model"
)

// The provider has no search endpoint, so lookups run against a built-in
// directory of commonly traded symbols first.
var directory = []model.StockInfo{
	// TWSE
	{Symbol: "2330.TW", Name: "Taiwan Semiconductor", Exchange: "TWSE"},
	{Symbol: "2317.TW", Name: "Hon Hai Precision", Exchange: "TWSE"},
	{Symbol: "2454.TW", Name: "MediaTek", Exchange: "TWSE"},
	{Symbol: "2412.TW", Name: "Chunghwa Telecom", Exchange: "TWSE"},
	{Symbol: "0050.TW", Name: "Yuanta Taiwan Top 50 ETF", Exchange: "TWSE"},
	{Symbol: "0056.TW", Name: "Yuanta Taiwan Dividend Plus ETF", Exchange: "TWSE"},
	// US ETFs
	{Symbol: "QQQ", Name: "Invesco QQQ Trust", Exchange: "NASDAQ"},
	{Symbol: "SPY", Name: "SPDR S&P 500 ETF", Exchange: "NYSE"},
	{Symbol: "VOO", Name: "Vanguard S&P 500 ETF", Exchange: "NYSE"},
	{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF", Exchange: "NYSE"},
	{Symbol: "VT", Name: "Vanguard Total World Stock ETF", Exchange: "NYSE"},
	{Symbol: "ARKK", Name: "ARK Innovation ETF", Exchange: "NYSE"},
	// US equities
	{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Exchange: "NASDAQ"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Exchange: "NASDAQ"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Exchange: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Exchange: "NASDAQ"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Exchange: "NASDAQ"},
	{Symbol: "TSM", Name: "Taiwan Semiconductor (ADR)", Exchange: "NYSE"},
}

// SearchDirectory matches the query against symbol and name,
// case-insensitively.
func SearchDirectory(query string) []model.StockInfo {
	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]model.StockInfo, 0)
	if q == "" {
		return results
	}
	for _, s := range directory {
		if strings.Contains(strings.ToLower(s.Symbol), q) || strings.Contains(strings.ToLower(s.Name), q) {
			results = append(results, s)
		}
	}
	return results
}

// DirectoryName returns the listed name for a symbol, or the symbol
// itself when it is not in the directory.
func DirectoryName(symbol string) string {
	for _, s := range directory {
		if strings.EqualFold(s.Symbol, symbol) {
			return s.Name
		}
	}
	return symbol
}
