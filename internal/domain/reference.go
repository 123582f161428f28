package domain

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	referencePrefix     = "TXN"
	referenceSuffixSize = 9
	base36Alphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewTransactionReference генерирует референс вида TXN-<unix ms>-<9 символов base36 в верхнем регистре>.
// Уникальность гарантирует индекс в БД, коллизии обрабатываются повтором вставки.
func NewTransactionReference(now time.Time) string {
	var sb strings.Builder
	sb.Grow(len(referencePrefix) + 2 + 13 + referenceSuffixSize) //nolint:mnd
	sb.WriteString(referencePrefix)
	sb.WriteByte('-')
	sb.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	sb.WriteByte('-')
	for range referenceSuffixSize {
		sb.WriteByte(base36Alphabet[rand.IntN(len(base36Alphabet))]) //nolint:gosec
	}
	return sb.String()
}
