package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/notification"
	"github.com/fsdevblog/paydesk/internal/repository/repoargs"
	"github.com/fsdevblog/paydesk/pkg/uow"
	"github.com/shopspring/decimal"
)

const (
	createReferenceAttempts = 3

	DefaultAdminPageLimit = 50
	DefaultUserPageLimit  = 20
	MaxPageLimit          = 100
)

type TransactionService struct {
	transRepo TransactionRepository
	notifier  *Dispatcher
	now       func() time.Time
}

func NewTransactionService(u uow.UOW, notifier *Dispatcher) (*TransactionService, error) {
	rName := uow.RepositoryName(repoargs.TransactionRepoName)
	transRepo, transRepoErr := uow.GetRepositoryAs[TransactionRepository](u, rName)
	if transRepoErr != nil {
		return nil, transRepoErr //nolint:wrapcheck
	}
	return &TransactionService{
		transRepo: transRepo,
		notifier:  notifier,
		now:       time.Now,
	}, nil
}

type CreateTransactionArgs struct {
	UserID        int64
	Amount        decimal.Decimal
	PaymentMethod domain.PaymentMethod
	// Credentials необязательные платежные данные, должны соответствовать PaymentMethod.
	Credentials json.RawMessage
	ReceiptURL  string
	Notes       string
}

// Create создает транзакцию в статусе pending с новым референсом. Коллизия референса
// повторяется до createReferenceAttempts раз.
func (t *TransactionService) Create(ctx context.Context, args CreateTransactionArgs) (*domain.Transaction, error) {
	amount, amountErr := domain.NormalizeAmount(args.Amount)
	if amountErr != nil {
		return nil, fmt.Errorf("creating transaction: %w", amountErr)
	}
	if !args.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("creating transaction: %w: `%s`", domain.ErrInvalidPaymentMethod, args.PaymentMethod)
	}

	now := t.now()
	creds, parseErr := domain.ParsePaymentCredentials(args.PaymentMethod, args.Credentials)
	if parseErr != nil {
		return nil, fmt.Errorf("creating transaction: %w", parseErr)
	}
	stored, storeErr := domain.StoreCredentials(creds, now)
	if storeErr != nil {
		return nil, fmt.Errorf("creating transaction: %w", storeErr)
	}

	var (
		created   *domain.Transaction
		createErr error
	)
	for range createReferenceAttempts {
		created, createErr = t.transRepo.Create(ctx, repoargs.CreateTransaction{
			UserID:        args.UserID,
			Amount:        amount,
			PaymentMethod: args.PaymentMethod,
			Credentials:   stored,
			ReceiptURL:    args.ReceiptURL,
			Reference:     domain.NewTransactionReference(now),
			Notes:         args.Notes,
		})
		if !errors.Is(createErr, domain.ErrDuplicateKey) {
			break
		}
	}
	if createErr != nil {
		return nil, fmt.Errorf("creating transaction: %w", createErr)
	}

	trans, findErr := t.transRepo.FindByID(ctx, created.ID)
	if findErr != nil {
		return nil, fmt.Errorf("creating transaction: %w", findErr)
	}

	t.notifier.Dispatch(transactionEvent(notification.EventTransactionCreated, trans))
	return trans, nil
}

type ListTransactionsArgs struct {
	Status        string
	PaymentMethod string
	Page          uint
	Limit         uint
}

type TransactionPage struct {
	Items      []domain.Transaction
	Total      int64
	Page       uint
	Limit      uint
	TotalPages uint
}

// List возвращает страницу всех транзакций, новые первыми.
func (t *TransactionService) List(ctx context.Context, args ListTransactionsArgs) (*TransactionPage, error) {
	return t.list(ctx, 0, args, DefaultAdminPageLimit)
}

// ListByUser возвращает страницу транзакций одного юзера.
func (t *TransactionService) ListByUser(
	ctx context.Context,
	userID int64,
	args ListTransactionsArgs,
) (*TransactionPage, error) {
	return t.list(ctx, userID, args, DefaultUserPageLimit)
}

func (t *TransactionService) list(
	ctx context.Context,
	userID int64,
	args ListTransactionsArgs,
	defaultLimit uint,
) (*TransactionPage, error) {
	status := domain.TransactionStatus(args.Status)
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("listing transactions: %w: `%s`", domain.ErrInvalidStatus, args.Status)
	}
	method := domain.PaymentMethod(args.PaymentMethod)
	if method != "" && !method.IsValid() {
		return nil, fmt.Errorf("listing transactions: %w: `%s`", domain.ErrInvalidPaymentMethod, args.PaymentMethod)
	}

	page, limit, offset := normalizePage(args.Page, args.Limit, defaultLimit, MaxPageLimit)
	items, total, err := t.transRepo.List(ctx, repoargs.TransactionFilter{
		UserID:        userID,
		Status:        status,
		PaymentMethod: method,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	totalPages := uint(0)
	if total > 0 {
		totalPages = (uint(total) + limit - 1) / limit //nolint:gosec
	}
	return &TransactionPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (t *TransactionService) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	trans, err := t.transRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return trans, nil
}

type UpdateStatusArgs struct {
	ID     int64
	Status string
	// Notes перезаписывает заметку, только если передан и не пуст.
	Notes *string
}

// UpdateStatus переводит транзакцию из pending в completed или failed. Неизвестный статус
// возвращает domain.ErrInvalidStatus, любой другой переход *domain.TransitionError. Баланс юзера
// при этом не меняется.
func (t *TransactionService) UpdateStatus(ctx context.Context, args UpdateStatusArgs) (*domain.Transaction, error) {
	target := domain.TransactionStatus(args.Status)
	if !target.IsValid() {
		return nil, fmt.Errorf("updating transaction status: %w: `%s`", domain.ErrInvalidStatus, args.Status)
	}

	if !domain.TransactionStatusPending.CanTransitionTo(target) {
		current, findErr := t.transRepo.FindByID(ctx, args.ID)
		if findErr != nil {
			return nil, fmt.Errorf("updating transaction status: %w", findErr)
		}
		return nil, domain.NewTransitionError(current.Status, target)
	}

	notes := args.Notes
	if notes != nil && *notes == "" {
		notes = nil
	}
	_, updErr := t.transRepo.UpdateStatusFromPending(ctx, repoargs.UpdateTransactionStatus{
		ID:     args.ID,
		Status: target,
		Notes:  notes,
	})
	if updErr != nil {
		if !errors.Is(updErr, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("updating transaction status: %w", updErr)
		}
		// строки в pending нет: либо транзакции нет вовсе, либо она уже в конечном статусе.
		current, findErr := t.transRepo.FindByID(ctx, args.ID)
		if findErr != nil {
			return nil, fmt.Errorf("updating transaction status: %w", findErr)
		}
		return nil, domain.NewTransitionError(current.Status, target)
	}

	trans, findErr := t.transRepo.FindByID(ctx, args.ID)
	if findErr != nil {
		return nil, fmt.Errorf("updating transaction status: %w", findErr)
	}

	event := transactionEvent(notification.EventTransactionStatusChanged, trans)
	event.OldStatus = string(domain.TransactionStatusPending)
	t.notifier.Dispatch(event)
	return trans, nil
}

func (t *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := t.transRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return nil
}

// Stats считает статистику за период timeframe (7d, 30d, 90d; пустое значение 30d).
func (t *TransactionService) Stats(ctx context.Context, timeframe string) (*domain.TransactionStats, error) {
	tf, tfErr := domain.ParseTimeframe(timeframe)
	if tfErr != nil {
		return nil, tfErr //nolint:wrapcheck
	}
	stats, err := t.transRepo.Stats(ctx, tf.Since(t.now()))
	if err != nil {
		return nil, fmt.Errorf("transaction stats: %w", err)
	}
	stats.Timeframe = tf
	return stats, nil
}

func transactionEvent(eventType notification.EventType, trans *domain.Transaction) notification.Event {
	amount := trans.Amount
	event := notification.Event{
		Type:          eventType,
		UserID:        trans.UserID,
		TransactionID: trans.ID,
		Reference:     trans.Reference,
		PaymentMethod: string(trans.PaymentMethod),
		Amount:        &amount,
		NewStatus:     string(trans.Status),
	}
	if trans.User != nil {
		event.Username = trans.User.Username
	}
	return event
}
