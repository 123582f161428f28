package service

import (
	"context"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/notification"
	"github.com/fsdevblog/paydesk/internal/processing"
	"github.com/fsdevblog/paydesk/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type BalanceRepository interface {
	CreateIfNotExists(ctx context.Context, args repoargs.BalanceSet) error
	FindByUserID(ctx context.Context, userID int64) (*domain.Balance, error)
	Upsert(ctx context.Context, args repoargs.BalanceSet) (*domain.Balance, error)
	ListWithUsers(ctx context.Context) ([]domain.BalanceWithUser, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context, filter repoargs.TransactionFilter) ([]domain.Transaction, int64, error)
	UpdateStatusFromPending(ctx context.Context, args repoargs.UpdateTransactionStatus) (*domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, since time.Time) (*domain.TransactionStats, error)
}

type SavedCardRepository interface {
	Save(ctx context.Context, userID int64, card domain.StoredCard) (*domain.SavedCard, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.SavedCard, error)
	Delete(ctx context.Context, userID, id int64) error
}

type PaymentMethodStore interface {
	List(ctx context.Context) ([]domain.PaymentMethodConfig, error)
	Get(ctx context.Context, id string) (*domain.PaymentMethodConfig, error)
	Update(
		ctx context.Context,
		id string,
		mutate func(cfg *domain.PaymentMethodConfig) error,
	) (*domain.PaymentMethodConfig, error)
}

type IntentStore interface {
	Save(ctx context.Context, intent domain.DepositIntent) error
	Find(ctx context.Context, id string) (*domain.DepositIntent, error)
	// Take атомарно забирает намерение: повторный вызов вернет domain.ErrRecordNotFound.
	Take(ctx context.Context, id string) (*domain.DepositIntent, error)
	Restore(ctx context.Context, intent domain.DepositIntent, now time.Time) error
}

type PaymentProcessor interface {
	Process(ctx context.Context, req processing.Request) (processing.Result, error)
}

type Notifier interface {
	Notify(ctx context.Context, event notification.Event) error
}
