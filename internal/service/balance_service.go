package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/notification"
	"github.com/fsdevblog/paydesk/internal/repository/repoargs"
	"github.com/fsdevblog/paydesk/pkg/uow"
	"github.com/shopspring/decimal"
)

type BalanceService struct {
	balanceRepo BalanceRepository
	notifier    *Dispatcher
}

func NewBalanceService(u uow.UOW, notifier *Dispatcher) (*BalanceService, error) {
	rName := uow.RepositoryName(repoargs.BalanceRepoName)
	balanceRepo, balanceRepoErr := uow.GetRepositoryAs[BalanceRepository](u, rName)
	if balanceRepoErr != nil {
		return nil, balanceRepoErr //nolint:wrapcheck
	}
	return &BalanceService{
		balanceRepo: balanceRepo,
		notifier:    notifier,
	}, nil
}

// Get возвращает баланс юзера. Если записи баланса еще нет, она создается со стартовой суммой.
func (b *BalanceService) Get(ctx context.Context, userID int64) (*domain.Balance, error) {
	seedErr := b.balanceRepo.CreateIfNotExists(ctx, repoargs.BalanceSet{
		UserID:   userID,
		Balance:  seedBalance(),
		Currency: domain.DefaultCurrency,
	})
	if seedErr != nil {
		return nil, fmt.Errorf("get balance: %w", seedErr)
	}

	balance, err := b.balanceRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// Set выставляет баланс юзера. Отрицательное значение или больше domain.MaxAmount возвращает
// domain.ErrInvalidAmount, несуществующий юзер domain.ErrRecordNotFound. Одновременные записи: побеждает последняя.
func (b *BalanceService) Set(ctx context.Context, userID int64, value decimal.Decimal) (*domain.Balance, error) {
	value, valueErr := domain.NormalizeBalance(value)
	if valueErr != nil {
		return nil, fmt.Errorf("set balance: %w", valueErr)
	}

	// старое значение нужно только для уведомления, ошибку чтения не считаем фатальной.
	var oldValue *decimal.Decimal
	if old, oldErr := b.balanceRepo.FindByUserID(ctx, userID); oldErr == nil {
		oldValue = &old.Balance
	}

	balance, err := b.balanceRepo.Upsert(ctx, repoargs.BalanceSet{
		UserID:   userID,
		Balance:  value,
		Currency: domain.DefaultCurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("set balance: %w", err)
	}

	newValue := balance.Balance
	b.notifier.Dispatch(notification.Event{
		Type:       notification.EventBalanceUpdated,
		UserID:     userID,
		OldBalance: oldValue,
		NewBalance: &newValue,
		Currency:   balance.Currency,
	})
	return balance, nil
}

// List возвращает балансы всех юзеров по убыванию суммы.
func (b *BalanceService) List(ctx context.Context) ([]domain.BalanceWithUser, error) {
	balances, err := b.balanceRepo.ListWithUsers(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return balances, nil
}
