// Package filestore хранит настройки методов оплаты в json файле.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/shopspring/decimal"
)

type limitsEntry struct {
	MinAmount  float64 `json:"minAmount"`
	MaxAmount  float64 `json:"maxAmount"`
	Commission float64 `json:"commission"`
	Currency   string  `json:"currency,omitempty"`
}

// entry формат записи в файле. Ключ записи в файле является id метода.
type entry struct {
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	CardNumber    string          `json:"cardNumber,omitempty"`
	ExpiryDate    string          `json:"expiryDate,omitempty"`
	QRCode        string          `json:"qrCode,omitempty"`
	Settings      json.RawMessage `json:"settings,omitempty"`
	Credentials   limitsEntry     `json:"credentials"`
}

// PaymentMethodStore читает и пишет файл с методами оплаты. Запись атомарная (временный файл + rename),
// писатель в процессе один.
type PaymentMethodStore struct {
	path string
	mu   sync.RWMutex
}

func NewPaymentMethodStore(path string) *PaymentMethodStore {
	return &PaymentMethodStore{path: path}
}

// EnsureExists создает файл с defaults, если его еще нет.
func (s *PaymentMethodStore) EnsureExists(defaults []domain.PaymentMethodConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("[filestore] stat %s: %w", s.path, err)
	}

	entries := make(map[string]entry, len(defaults))
	for _, cfg := range defaults {
		entries[cfg.ID] = toEntry(cfg)
	}
	return s.write(entries)
}

// List возвращает все методы, отсортированные по id.
func (s *PaymentMethodStore) List(ctx context.Context) ([]domain.PaymentMethodConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	s.mu.RLock()
	entries, err := s.read()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	configs := make([]domain.PaymentMethodConfig, len(ids))
	for i, id := range ids {
		configs[i] = fromEntry(id, entries[id])
	}
	return configs, nil
}

// Get возвращает метод по id или domain.ErrRecordNotFound.
func (s *PaymentMethodStore) Get(ctx context.Context, id string) (*domain.PaymentMethodConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	s.mu.RLock()
	entries, err := s.read()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("[filestore] payment method `%s`: %w", id, domain.ErrRecordNotFound)
	}
	cfg := fromEntry(id, e)
	return &cfg, nil
}

// Update применяет mutate к методу id и сохраняет файл. Если mutate вернул ошибку или метода нет,
// файл не меняется.
func (s *PaymentMethodStore) Update(
	ctx context.Context,
	id string,
	mutate func(cfg *domain.PaymentMethodConfig) error,
) (*domain.PaymentMethodConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("[filestore] payment method `%s`: %w", id, domain.ErrRecordNotFound)
	}

	cfg := fromEntry(id, e)
	if mutateErr := mutate(&cfg); mutateErr != nil {
		return nil, mutateErr
	}
	entries[id] = toEntry(cfg)

	if writeErr := s.write(entries); writeErr != nil {
		return nil, writeErr
	}
	return &cfg, nil
}

func (s *PaymentMethodStore) read() (map[string]entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("[filestore] read %s: %w", s.path, err)
	}
	var entries map[string]entry
	if jsonErr := json.Unmarshal(data, &entries); jsonErr != nil {
		return nil, fmt.Errorf("[filestore] parse %s: %w", s.path, jsonErr)
	}
	if entries == nil {
		entries = make(map[string]entry)
	}
	return entries, nil
}

// write сериализует entries во временный файл в той же директории и переименовывает его поверх основного.
func (s *PaymentMethodStore) write(entries map[string]entry) (err error) {
	data, jsonErr := json.MarshalIndent(entries, "", "  ")
	if jsonErr != nil {
		return fmt.Errorf("[filestore] marshal: %w", jsonErr)
	}

	dir := filepath.Dir(s.path)
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil { //nolint:mnd
		return fmt.Errorf("[filestore] mkdir %s: %w", dir, mkErr)
	}

	tmp, tmpErr := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if tmpErr != nil {
		return fmt.Errorf("[filestore] create temp file: %w", tmpErr)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, wErr := tmp.Write(append(data, '\n')); wErr != nil {
		_ = tmp.Close()
		return fmt.Errorf("[filestore] write temp file: %w", wErr)
	}
	if syncErr := tmp.Sync(); syncErr != nil {
		_ = tmp.Close()
		return fmt.Errorf("[filestore] sync temp file: %w", syncErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return fmt.Errorf("[filestore] close temp file: %w", closeErr)
	}
	if renameErr := os.Rename(tmp.Name(), s.path); renameErr != nil {
		return fmt.Errorf("[filestore] rename temp file: %w", renameErr)
	}
	return nil
}

func fromEntry(id string, e entry) domain.PaymentMethodConfig {
	currency := e.Credentials.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return domain.PaymentMethodConfig{
		ID:            id,
		Name:          e.Name,
		Type:          domain.PaymentMethodType(e.Type),
		AccountNumber: e.AccountNumber,
		CardNumber:    e.CardNumber,
		ExpiryDate:    e.ExpiryDate,
		QRCode:        e.QRCode,
		Settings:      e.Settings,
		Limits: domain.PaymentMethodLimits{
			MinAmount:  decimal.NewFromFloat(e.Credentials.MinAmount),
			MaxAmount:  decimal.NewFromFloat(e.Credentials.MaxAmount),
			Commission: decimal.NewFromFloat(e.Credentials.Commission),
			Currency:   currency,
		},
	}
}

func toEntry(cfg domain.PaymentMethodConfig) entry {
	return entry{
		Name:          cfg.Name,
		Type:          string(cfg.Type),
		AccountNumber: cfg.AccountNumber,
		CardNumber:    cfg.CardNumber,
		ExpiryDate:    cfg.ExpiryDate,
		QRCode:        cfg.QRCode,
		Settings:      cfg.Settings,
		Credentials: limitsEntry{
			MinAmount:  cfg.Limits.MinAmount.InexactFloat64(),
			MaxAmount:  cfg.Limits.MaxAmount.InexactFloat64(),
			Commission: cfg.Limits.Commission.InexactFloat64(),
			Currency:   cfg.Limits.Currency,
		},
	}
}

// DefaultPaymentMethods методы оплаты, которыми заполняется пустое хранилище.
func DefaultPaymentMethods() []domain.PaymentMethodConfig {
	limits := func(minAmount, maxAmount int64) domain.PaymentMethodLimits {
		return domain.PaymentMethodLimits{
			MinAmount:  decimal.NewFromInt(minAmount),
			MaxAmount:  decimal.NewFromInt(maxAmount),
			Commission: decimal.Zero,
			Currency:   domain.DefaultCurrency,
		}
	}
	return []domain.PaymentMethodConfig{
		{
			ID:     string(domain.PaymentMethodCardDeposit),
			Name:   "Visa/Mastercard",
			Type:   domain.PaymentMethodTypeCard,
			Limits: limits(5, 10000), //nolint:mnd
		},
		{
			ID:     string(domain.PaymentMethodM10),
			Name:   "M10",
			Type:   domain.PaymentMethodTypeMobile,
			Limits: limits(1, 2000), //nolint:mnd
		},
		{
			ID:     string(domain.PaymentMethodMPay),
			Name:   "MPay",
			Type:   domain.PaymentMethodTypeWallet,
			Limits: limits(2, 3000), //nolint:mnd
		},
	}
}
