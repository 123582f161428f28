package domain

import "github.com/shopspring/decimal"

const moneyScale = 2

// MaxAmount наибольшая сумма, которую вмещают денежные колонки numeric(12,2).
var MaxAmount = decimal.RequireFromString("9999999999.99")

// NormalizeAmount округляет сумму платежа до двух знаков. Сумма должна оставаться положительной
// после округления и не превышать MaxAmount, иначе ErrInvalidAmount.
func NormalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.Round(moneyScale)
	if !rounded.IsPositive() || rounded.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return rounded, nil
}

// NormalizeBalance то же для баланса: ноль допустим, отрицательное значение нет.
func NormalizeBalance(balance decimal.Decimal) (decimal.Decimal, error) {
	if balance.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	rounded := balance.Round(moneyScale)
	if rounded.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return rounded, nil
}
