// Package cardcheck содержит проверки номеров банковских карт.
package cardcheck

import (
	"strings"
)

type Brand string

const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "mastercard"
	BrandAmex       Brand = "amex"
	BrandDiscover   Brand = "discover"
	BrandUnknown    Brand = "unknown"
)

const (
	minCardDigits = 13
	maxCardDigits = 19
)

// Normalize убирает пробелы и дефисы из номера карты.
func Normalize(number string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '\t' {
			return -1
		}
		return r
	}, number)
}

// IsValidLuhn проверяет номер карты: после нормализации должно остаться от 13 до 19 цифр,
// и контрольная сумма по алгоритму Луна должна быть кратна 10.
func IsValidLuhn(number string) bool {
	cleaned := Normalize(number)
	if len(cleaned) < minCardDigits || len(cleaned) > maxCardDigits {
		return false
	}

	var sum int
	maxDigit := 9
	double := false

	for i := len(cleaned) - 1; i >= 0; i-- {
		char := cleaned[i]
		if char < '0' || char > '9' {
			return false
		}

		digit := int(char - '0')
		if double {
			digit *= 2
			if digit > maxDigit {
				digit -= maxDigit
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// DetectBrand определяет платежную систему по префиксу номера.
func DetectBrand(number string) Brand {
	cleaned := Normalize(number)
	if cleaned == "" {
		return BrandUnknown
	}

	switch {
	case cleaned[0] == '4':
		return BrandVisa
	case len(cleaned) >= 2 && cleaned[0] == '5' && cleaned[1] >= '1' && cleaned[1] <= '5':
		return BrandMastercard
	case len(cleaned) >= 2 && cleaned[0] == '3' && (cleaned[1] == '4' || cleaned[1] == '7'):
		return BrandAmex
	case cleaned[0] == '6':
		return BrandDiscover
	default:
		return BrandUnknown
	}
}

// Mask возвращает номер в виде ****-****-****-1234. Для номеров короче 4 символов
// маскируется все.
func Mask(number string) string {
	const lastDigits = 4
	cleaned := Normalize(number)
	if len(cleaned) < lastDigits {
		return "****-****-****-****"
	}
	return "****-****-****-" + cleaned[len(cleaned)-lastDigits:]
}
