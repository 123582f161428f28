package domain

import (
	"fmt"
	"time"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// IsValid проверяет что статус входит в перечисление.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal возвращает true для статусов, из которых переходов нет.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// CanTransitionTo описывает машину состояний транзакции: допустимы только переходы
// pending -> completed и pending -> failed.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	return s == TransactionStatusPending && next.IsTerminal()
}

type PaymentMethod string

const (
	PaymentMethodCardDeposit PaymentMethod = "card-deposit"
	PaymentMethodM10         PaymentMethod = "m10"
	PaymentMethodMPay        PaymentMethod = "mpay"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCardDeposit, PaymentMethodM10, PaymentMethodMPay:
		return true
	default:
		return false
	}
}

// PaymentMethods возвращает все поддерживаемые методы оплаты в стабильном порядке.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCardDeposit, PaymentMethodM10, PaymentMethodMPay}
}

type PaymentMethodType string

const (
	PaymentMethodTypeCard   PaymentMethodType = "card"
	PaymentMethodTypeMobile PaymentMethodType = "mobile"
	PaymentMethodTypeWallet PaymentMethodType = "wallet"
)

type Timeframe string

const (
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
	Timeframe90d Timeframe = "90d"
)

const DefaultTimeframe = Timeframe30d

// ParseTimeframe разбирает окно статистики. Пустая строка означает DefaultTimeframe.
func ParseTimeframe(value string) (Timeframe, error) {
	switch tf := Timeframe(value); tf {
	case "":
		return DefaultTimeframe, nil
	case Timeframe7d, Timeframe30d, Timeframe90d:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: `%s`", ErrInvalidTimeframe, value)
	}
}

// Since возвращает нижнюю границу окна относительно now.
func (t Timeframe) Since(now time.Time) time.Time {
	switch t {
	case Timeframe7d:
		return now.AddDate(0, 0, -7)
	case Timeframe90d:
		return now.AddDate(0, 0, -90)
	default:
		return now.AddDate(0, 0, -30)
	}
}

const (
	DefaultCurrency = "AZN"
	DefaultCountry  = "Azerbaijan"
)
