package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficientData marks a symbol whose price history is empty or too
// short to simulate (fewer than minObservations trading days).
var ErrInsufficientData = errors.New("insufficient price data")

// InvalidConfigError rejects a malformed request before any simulation
// begins; the whole request fails fast.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// SymbolError ties a data problem to the symbol that caused it. Per-symbol
// problems are collected and do not abort the rest of the batch.
type SymbolError struct {
	Symbol string
	Err    error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Symbol, e.Err)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}

// BatchError reports that every symbol in a batch failed, aggregating
// each symbol's reason.
type BatchError struct {
	Errors []*SymbolError
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, se := range e.Errors {
		msgs[i] = se.Error()
	}
	return strings.Join(msgs, "; ")
}
