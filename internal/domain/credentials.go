package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fsdevblog/paydesk/pkg/cardcheck"
)

const (
	minPhoneDigits  = 9
	maxPhoneDigits  = 15
	maxWalletIDSize = 64
)

// PaymentCredentials платежные данные, которые юзер вводит при пополнении. Конкретный вариант
// определяется методом оплаты.
type PaymentCredentials interface {
	Method() PaymentMethod
	Validate(now time.Time) error
	// Stored возвращает представление данных, безопасное для хранения в БД.
	Stored() any
}

// ParsePaymentCredentials разбирает сырые данные в вариант, соответствующий методу. Пустое тело
// (или null) означает отсутствие данных: вернется nil без ошибки.
func ParsePaymentCredentials(method PaymentMethod, raw json.RawMessage) (PaymentCredentials, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil //nolint:nilnil
	}

	var creds PaymentCredentials
	switch method {
	case PaymentMethodCardDeposit:
		creds = new(CardCredentials)
	case PaymentMethodM10:
		creds = new(M10Credentials)
	case PaymentMethodMPay:
		creds = new(MPayCredentials)
	default:
		return nil, fmt.Errorf("%w: `%s`", ErrInvalidPaymentMethod, method)
	}

	if err := json.Unmarshal(trimmed, creds); err != nil {
		return nil, NewCredentialsError("Malformed payment data")
	}
	return creds, nil
}

// StoreCredentials проверяет данные и сериализует их безопасное представление.
func StoreCredentials(creds PaymentCredentials, now time.Time) (json.RawMessage, error) {
	if creds == nil {
		return nil, nil
	}
	if err := creds.Validate(now); err != nil {
		return nil, err
	}
	b, err := json.Marshal(creds.Stored())
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}
	return b, nil
}

type CardCredentials struct {
	CardNumber string `json:"cardNumber"`
	CardHolder string `json:"cardHolder"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// StoredCard то, что остается от карты после сохранения. CVV и полный номер не хранятся.
type StoredCard struct {
	CardHolder   string          `json:"cardHolder"`
	MaskedNumber string          `json:"maskedNumber"`
	Brand        cardcheck.Brand `json:"brand"`
	Expiry       string          `json:"expiry"`
}

func (c *CardCredentials) Method() PaymentMethod {
	return PaymentMethodCardDeposit
}

func (c *CardCredentials) Validate(now time.Time) error {
	if strings.TrimSpace(c.CardHolder) == "" {
		return NewCredentialsError("Card holder is required")
	}
	if !cardcheck.IsValidLuhn(c.CardNumber) {
		return NewCredentialsError("Invalid card number")
	}
	if !isDigits(c.CVV) || len(c.CVV) < 3 || len(c.CVV) > 4 {
		return NewCredentialsError("Invalid CVV")
	}
	expiresAt, err := parseCardExpiry(c.Expiry)
	if err != nil {
		return err
	}
	if !now.Before(expiresAt) {
		return NewCredentialsError("Card expired")
	}
	return nil
}

func (c *CardCredentials) Stored() any {
	return c.StoredCard()
}

func (c *CardCredentials) StoredCard() StoredCard {
	return StoredCard{
		CardHolder:   strings.TrimSpace(c.CardHolder),
		MaskedNumber: cardcheck.Mask(c.CardNumber),
		Brand:        cardcheck.DetectBrand(c.CardNumber),
		Expiry:       c.Expiry,
	}
}

// parseCardExpiry разбирает срок действия в формате MM/YY и возвращает первый момент, когда карта
// уже недействительна (начало следующего месяца, UTC).
func parseCardExpiry(expiry string) (time.Time, error) {
	mm, yy, ok := strings.Cut(strings.TrimSpace(expiry), "/")
	if !ok || len(mm) != 2 || len(yy) != 2 || !isDigits(mm) || !isDigits(yy) {
		return time.Time{}, NewCredentialsError("Expiry must be in MM/YY format")
	}
	month, _ := strconv.Atoi(mm)
	year, _ := strconv.Atoi(yy)
	if month < 1 || month > 12 {
		return time.Time{}, NewCredentialsError("Invalid expiry month")
	}
	return time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC), nil
}

type M10Credentials struct {
	Phone string `json:"phone"`
}

func (m *M10Credentials) Method() PaymentMethod {
	return PaymentMethodM10
}

func (m *M10Credentials) Validate(time.Time) error {
	phone := NormalizePhone(m.Phone)
	if !isDigits(phone) || len(phone) < minPhoneDigits || len(phone) > maxPhoneDigits {
		return NewCredentialsError(fmt.Sprintf("Phone must contain %d-%d digits", minPhoneDigits, maxPhoneDigits))
	}
	return nil
}

func (m *M10Credentials) Stored() any {
	return M10Credentials{Phone: NormalizePhone(m.Phone)}
}

// NormalizePhone убирает из номера телефона +, пробелы и дефисы.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r == '+' || r == ' ' || r == '-' {
			return -1
		}
		return r
	}, phone)
}

type MPayCredentials struct {
	WalletID string `json:"walletId"`
}

func (m *MPayCredentials) Method() PaymentMethod {
	return PaymentMethodMPay
}

func (m *MPayCredentials) Validate(time.Time) error {
	wallet := strings.TrimSpace(m.WalletID)
	if wallet == "" {
		return NewCredentialsError("Wallet ID is required")
	}
	if len(wallet) > maxWalletIDSize {
		return NewCredentialsError("Wallet ID is too long")
	}
	return nil
}

func (m *MPayCredentials) Stored() any {
	return MPayCredentials{WalletID: strings.TrimSpace(m.WalletID)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
