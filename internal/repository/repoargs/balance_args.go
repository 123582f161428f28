package repoargs

import "github.com/shopspring/decimal"

type BalanceSet struct {
	UserID   int64
	Balance  decimal.Decimal
	Currency string
}
