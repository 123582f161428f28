package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/processing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	IntentTTL = 30 * time.Minute

	defaultProcessingTimeout = 30 * time.Second
)

// TransactionCreator создание транзакции, нужное сервису платежей.
type TransactionCreator interface {
	Create(ctx context.Context, args CreateTransactionArgs) (*domain.Transaction, error)
}

// PaymentService ведет пополнение: намерение (метод и сумма), затем подтверждение с платежными
// данными через процессор метода. Карты, сохраненные при подтверждении, тоже живут здесь.
type PaymentService struct {
	methods      PaymentMethodStore
	intents      IntentStore
	processor    PaymentProcessor
	transactions TransactionCreator
	cards        SavedCardRepository
	l            *logrus.Entry
	now          func() time.Time
}

func NewPaymentService(
	methods PaymentMethodStore,
	intents IntentStore,
	processor PaymentProcessor,
	transactions TransactionCreator,
	cards SavedCardRepository,
	l *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		methods:      methods,
		intents:      intents,
		processor:    processor,
		transactions: transactions,
		cards:        cards,
		l:            l.WithField("service", "payment"),
		now:          time.Now,
	}
}

// CreateIntent проверяет сумму по лимитам метода и сохраняет намерение на IntentTTL.
func (p *PaymentService) CreateIntent(
	ctx context.Context,
	userID int64,
	method string,
	amount decimal.Decimal,
) (*domain.DepositIntent, error) {
	pm := domain.PaymentMethod(method)
	if !pm.IsValid() {
		return nil, fmt.Errorf("creating intent: %w: `%s`", domain.ErrInvalidPaymentMethod, method)
	}
	amount, amountErr := domain.NormalizeAmount(amount)
	if amountErr != nil {
		return nil, fmt.Errorf("creating intent: %w", amountErr)
	}

	cfg, cfgErr := p.methods.Get(ctx, method)
	if cfgErr != nil {
		return nil, fmt.Errorf("creating intent: %w", cfgErr)
	}
	if !cfg.AllowsAmount(amount) {
		return nil, &domain.AmountRangeError{
			Method: pm,
			Min:    cfg.Limits.MinAmount.StringFixed(2), //nolint:mnd
			Max:    cfg.Limits.MaxAmount.StringFixed(2), //nolint:mnd
		}
	}

	now := p.now().UTC()
	intent := domain.DepositIntent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Method:    pm,
		Amount:    amount,
		CreatedAt: now,
		ExpiresAt: now.Add(IntentTTL),
	}
	if err := p.intents.Save(ctx, intent); err != nil {
		return nil, fmt.Errorf("creating intent: %w", err)
	}
	return &intent, nil
}

// GetIntent возвращает намерение юзера. Чужое или истекшее намерение возвращает domain.ErrRecordNotFound.
func (p *PaymentService) GetIntent(ctx context.Context, userID int64, id string) (*domain.DepositIntent, error) {
	intent, err := p.intents.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get intent: %w", err)
	}
	if intent.UserID != userID {
		return nil, fmt.Errorf("get intent `%s`: %w", id, domain.ErrRecordNotFound)
	}
	return intent, nil
}

type ConfirmIntentArgs struct {
	UserID      int64
	IntentID    string
	Credentials json.RawMessage
	// SaveCard сохраняет карту юзера после одобренного платежа картой.
	SaveCard bool
}

// ConfirmIntent проводит платеж по намерению. Перед обращением к процессору намерение атомарно
// забирается из хранилища, так что одно намерение дает не больше одной транзакции: параллельное
// подтверждение получит domain.ErrRecordNotFound. При одобрении создается транзакция в pending с
// сообщением процессора в заметке. При отказе возвращается *domain.DeclinedError, а намерение
// возвращается в хранилище для повторной попытки (как и при ошибке процессора).
//
// Обработка не прерывается отменой ctx: отключение клиента во время ожидания процессора не должно
// оставить платеж без транзакции.
func (p *PaymentService) ConfirmIntent(ctx context.Context, args ConfirmIntentArgs) (*domain.Transaction, error) {
	intent, intentErr := p.GetIntent(ctx, args.UserID, args.IntentID)
	if intentErr != nil {
		return nil, intentErr
	}

	creds, parseErr := domain.ParsePaymentCredentials(intent.Method, args.Credentials)
	if parseErr != nil {
		return nil, fmt.Errorf("confirming intent: %w", parseErr)
	}
	if creds == nil {
		return nil, fmt.Errorf("confirming intent: %w", domain.NewCredentialsError("Payment credentials are required"))
	}
	if err := creds.Validate(p.now()); err != nil {
		return nil, fmt.Errorf("confirming intent: %w", err)
	}

	procCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultProcessingTimeout)
	defer cancel()

	claimed, takeErr := p.intents.Take(procCtx, intent.ID)
	if takeErr != nil {
		return nil, fmt.Errorf("confirming intent: %w", takeErr)
	}

	result, procErr := p.processor.Process(procCtx, processing.Request{
		Reference:   claimed.ID,
		UserID:      args.UserID,
		Method:      claimed.Method,
		Amount:      claimed.Amount,
		Currency:    domain.DefaultCurrency,
		Credentials: creds,
	})
	if procErr != nil {
		return nil, p.restoreIntent(procCtx, *claimed, fmt.Errorf("confirming intent: processing: %w", procErr))
	}
	if !result.Approved {
		return nil, p.restoreIntent(procCtx, *claimed, &domain.DeclinedError{Message: result.Message})
	}

	// после одобрения намерение не возвращается: платеж уже проведен процессором.
	trans, createErr := p.transactions.Create(procCtx, CreateTransactionArgs{
		UserID:        args.UserID,
		Amount:        claimed.Amount,
		PaymentMethod: claimed.Method,
		Credentials:   args.Credentials,
		Notes:         result.Message,
	})
	if createErr != nil {
		return nil, fmt.Errorf("confirming intent: %w", createErr)
	}

	if card, isCard := creds.(*domain.CardCredentials); isCard && args.SaveCard {
		// платеж уже проведен, ошибку сохранения карты только логируем.
		if _, saveErr := p.cards.Save(procCtx, args.UserID, card.StoredCard()); saveErr != nil {
			p.l.WithError(saveErr).WithField("userID", args.UserID).Error("failed to save card")
		}
	}
	return trans, nil
}

// restoreIntent возвращает намерение в хранилище и дополняет cause ошибкой возврата, если она была.
func (p *PaymentService) restoreIntent(ctx context.Context, intent domain.DepositIntent, cause error) error {
	if err := p.intents.Restore(ctx, intent, p.now().UTC()); err != nil {
		return errors.Join(cause, fmt.Errorf("restoring intent: %w", err))
	}
	return cause
}

// ListCards возвращает сохраненные карты юзера.
func (p *PaymentService) ListCards(ctx context.Context, userID int64) ([]domain.SavedCard, error) {
	cards, err := p.cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	return cards, nil
}

// DeleteCard удаляет карту юзера. Чужая карта не видна: вернется domain.ErrRecordNotFound.
func (p *PaymentService) DeleteCard(ctx context.Context, userID, id int64) error {
	if err := p.cards.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return nil
}
