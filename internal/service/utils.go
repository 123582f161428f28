package service

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

const (
	minSeedCents = 10
	maxSeedCents = 99
)

// seedBalance стартовый баланс нового юзера: случайная сумма от 0.10 до 0.99.
func seedBalance() decimal.Decimal {
	cents := minSeedCents + rand.IntN(maxSeedCents-minSeedCents+1) //nolint:gosec
	return decimal.New(int64(cents), -2)                           //nolint:mnd
}

// normalizePage приводит номер страницы и лимит к допустимым значениям и возвращает offset.
func normalizePage(page, limit, defaultLimit, maxLimit uint) (uint, uint, uint) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}
