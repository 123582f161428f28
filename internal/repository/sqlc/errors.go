package sqlc

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	numericOutOfRangeCode   = "22003"
)

// convertErr приводит ошибку к виду слоя репозитория: контекст, тип бизнес-ошибки и исходное сообщение.
//   - pgx.ErrNoRows и нарушение внешнего ключа превращаются в domain.ErrRecordNotFound.
//   - Нарушение уникального индекса превращается в domain.ErrDuplicateKey.
//   - Нарушение CHECK ограничения и переполнение numeric превращаются в domain.ErrInvalidAmount
//     (все CHECK и numeric колонки в схеме на суммы).
//   - Все остальное возвращается как domain.ErrUnknown.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrUnknown

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			errType = domain.ErrDuplicateKey
		case foreignKeyViolationCode:
			errType = domain.ErrRecordNotFound
		case checkViolationCode, numericOutOfRangeCode:
			errType = domain.ErrInvalidAmount
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
