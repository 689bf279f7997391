package domain

import (
	"github.com/shopspring/decimal"
)

const (
	// MoneyScale is the number of fraction digits stored for every amount and balance.
	MoneyScale = 4
	// MoneyIntegerDigits is the number of integer digits a stored amount may have.
	MoneyIntegerDigits = 15
)

var moneyLimit = decimal.New(1, MoneyIntegerDigits)

// FitsMoney reports whether d can be stored without rounding or overflow.
func FitsMoney(d decimal.Decimal) bool {
	if !d.Equal(d.Truncate(MoneyScale)) {
		return false
	}
	return d.Abs().LessThan(moneyLimit)
}
