package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidCredentials   = errors.New("invalid payment credentials")
	ErrInvalidTimeframe     = errors.New("invalid timeframe")
	ErrAmountOutOfRange     = errors.New("amount out of range")
	ErrPaymentDeclined      = errors.New("payment declined")
)

// TransitionError возвращается при попытке перевести транзакцию в статус, недопустимый для текущего.
type TransitionError struct {
	From TransactionStatus
	To   TransactionStatus
}

func NewTransitionError(from, to TransactionStatus) error {
	return &TransitionError{From: from, To: to}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transaction status cannot change from `%s` to `%s`", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AmountRangeError сообщает о сумме, выходящей за лимиты метода оплаты.
type AmountRangeError struct {
	Method PaymentMethod
	Min    string
	Max    string
}

func (e *AmountRangeError) Error() string {
	return fmt.Sprintf("amount for %s must be between %s and %s", e.Method, e.Min, e.Max)
}

func (e *AmountRangeError) Unwrap() error {
	return ErrAmountOutOfRange
}

// DeclinedError содержит сообщение процессора об отказе.
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	return e.Message
}

func (e *DeclinedError) Unwrap() error {
	return ErrPaymentDeclined
}

// CredentialsError описывает, чем не подошли платежные данные. Reason можно показывать юзеру.
type CredentialsError struct {
	Reason string
}

func NewCredentialsError(reason string) error {
	return &CredentialsError{Reason: reason}
}

func (e *CredentialsError) Error() string {
	return ErrInvalidCredentials.Error() + ": " + e.Reason
}

func (e *CredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}
