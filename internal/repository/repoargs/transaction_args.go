package repoargs

import (
	"encoding/json"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateTransaction struct {
	UserID        int64
	Amount        decimal.Decimal
	PaymentMethod domain.PaymentMethod
	Credentials   json.RawMessage
	ReceiptURL    string
	Reference     string
	Notes         string
}

// TransactionFilter фильтр списка транзакций. Нулевые значения полей означают "без фильтра".
type TransactionFilter struct {
	UserID        int64
	Status        domain.TransactionStatus
	PaymentMethod domain.PaymentMethod
	Limit         uint
	Offset        uint
}

type UpdateTransactionStatus struct {
	ID     int64
	Status domain.TransactionStatus
	// Notes перезаписывает заметку, только если не nil и не пуст.
	Notes *string
}
