package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*service.AuthResult, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*service.AuthResult, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type BalanceServicer interface {
	Get(ctx context.Context, userID int64) (*domain.Balance, error)
	Set(ctx context.Context, userID int64, value decimal.Decimal) (*domain.Balance, error)
	List(ctx context.Context) ([]domain.BalanceWithUser, error)
}

type TransactionServicer interface {
	Create(ctx context.Context, args service.CreateTransactionArgs) (*domain.Transaction, error)
	List(ctx context.Context, args service.ListTransactionsArgs) (*service.TransactionPage, error)
	ListByUser(ctx context.Context, userID int64, args service.ListTransactionsArgs) (*service.TransactionPage, error)
	Get(ctx context.Context, id int64) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, args service.UpdateStatusArgs) (*domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, timeframe string) (*domain.TransactionStats, error)
}

type PaymentMethodServicer interface {
	List(ctx context.Context) ([]domain.PaymentMethodConfig, error)
	Get(ctx context.Context, id string) (*domain.PaymentMethodConfig, error)
	Update(ctx context.Context, id string, patch service.PaymentMethodPatch) (*domain.PaymentMethodConfig, error)
}

type PaymentServicer interface {
	CreateIntent(ctx context.Context, userID int64, method string, amount decimal.Decimal) (*domain.DepositIntent, error)
	GetIntent(ctx context.Context, userID int64, id string) (*domain.DepositIntent, error)
	ConfirmIntent(ctx context.Context, args service.ConfirmIntentArgs) (*domain.Transaction, error)
	ListCards(ctx context.Context, userID int64) ([]domain.SavedCard, error)
	DeleteCard(ctx context.Context, userID, id int64) error
}
