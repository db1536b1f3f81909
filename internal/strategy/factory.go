package strategy

import (
	"fmt"
)

func NewStrategy(strategyType string, amount float64, cadence Cadence) (Strategy, error) {
	switch strategyType {
	case "lump_sum":
		return NewLumpSum(amount), nil
	case "dca":
		if cadence != CadenceMonthly && cadence != CadenceWeekly {
			return nil, fmt.Errorf("invalid cadence for dca: %q", cadence)
		}
		return NewDCA(amount, cadence), nil
	default:
		return nil, fmt.Errorf("unknown strategy type: %s", strategyType)
	}
}
