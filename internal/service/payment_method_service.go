package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/shopspring/decimal"
)

type PaymentMethodService struct {
	store PaymentMethodStore
}

func NewPaymentMethodService(store PaymentMethodStore) *PaymentMethodService {
	return &PaymentMethodService{store: store}
}

func (p *PaymentMethodService) List(ctx context.Context) ([]domain.PaymentMethodConfig, error) {
	methods, err := p.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	return methods, nil
}

// Get возвращает настройки метода. Отсутствующий метод возвращает domain.ErrRecordNotFound.
func (p *PaymentMethodService) Get(ctx context.Context, id string) (*domain.PaymentMethodConfig, error) {
	method, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return method, nil
}

// PaymentMethodPatch изменения метода. Пустые строки и nil значения не меняют соответствующее поле.
type PaymentMethodPatch struct {
	Provider      string
	AccountNumber string
	ExpiryDate    string
	QRCode        string
	Currency      string
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	Commission    *decimal.Decimal
}

// Update применяет patch к методу id. Лимиты после применения должны удовлетворять 0 < min <= max,
// комиссия не может быть отрицательной. При ошибке файл не меняется.
func (p *PaymentMethodService) Update(
	ctx context.Context,
	id string,
	patch PaymentMethodPatch,
) (*domain.PaymentMethodConfig, error) {
	updated, err := p.store.Update(ctx, id, func(cfg *domain.PaymentMethodConfig) error {
		return applyPaymentMethodPatch(cfg, patch)
	})
	if err != nil {
		return nil, fmt.Errorf("updating payment method `%s`: %w", id, err)
	}
	return updated, nil
}

func applyPaymentMethodPatch(cfg *domain.PaymentMethodConfig, patch PaymentMethodPatch) error {
	if v := strings.TrimSpace(patch.Provider); v != "" {
		cfg.Name = v
	}
	// у карточных методов номер хранится в cardNumber, поэтому пишем в оба поля.
	if v := strings.TrimSpace(patch.AccountNumber); v != "" {
		cfg.AccountNumber = v
		cfg.CardNumber = v
	}
	if v := strings.TrimSpace(patch.ExpiryDate); v != "" {
		cfg.ExpiryDate = v
	}
	if v := strings.TrimSpace(patch.QRCode); v != "" {
		cfg.QRCode = v
	}
	if v := strings.TrimSpace(patch.Currency); v != "" {
		cfg.Limits.Currency = strings.ToUpper(v)
	}
	if patch.MinAmount != nil {
		cfg.Limits.MinAmount = patch.MinAmount.Round(2) //nolint:mnd
	}
	if patch.MaxAmount != nil {
		cfg.Limits.MaxAmount = patch.MaxAmount.Round(2) //nolint:mnd
	}
	if patch.Commission != nil {
		cfg.Limits.Commission = *patch.Commission
	}

	if !cfg.Limits.MinAmount.IsPositive() || cfg.Limits.MinAmount.GreaterThan(cfg.Limits.MaxAmount) {
		return fmt.Errorf("%w: limits must satisfy 0 < min <= max", domain.ErrInvalidAmount)
	}
	if cfg.Limits.Commission.IsNegative() {
		return fmt.Errorf("%w: commission must not be negative", domain.ErrInvalidAmount)
	}
	return nil
}
