package filestore

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const fixture = `{
  "mpay": {
    "name": "MPay",
    "type": "wallet",
    "accountNumber": "MPAY-1",
    "settings": {"color": "#ff0000"},
    "credentials": {"minAmount": 2, "maxAmount": 3000, "commission": 1.5, "currency": "AZN"}
  },
  "card-deposit": {
    "name": "Visa/Mastercard",
    "type": "card",
    "cardNumber": "4169 0000 0000 0000",
    "credentials": {"minAmount": 5, "maxAmount": 10000}
  }
}`

type PaymentMethodStoreTestSuite struct {
	suite.Suite
	path  string
	store *PaymentMethodStore
}

func TestPaymentMethodStoreSuite(t *testing.T) {
	suite.Run(t, new(PaymentMethodStoreTestSuite))
}

func (s *PaymentMethodStoreTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "payment-credentials.json")
	s.Require().NoError(os.WriteFile(s.path, []byte(fixture), 0o600))
	s.store = NewPaymentMethodStore(s.path)
}

func (s *PaymentMethodStoreTestSuite) TestList() {
	configs, err := s.store.List(s.T().Context())
	s.Require().NoError(err)
	s.Require().Len(configs, 2)

	// сортировка по id.
	s.Equal("card-deposit", configs[0].ID)
	s.Equal("mpay", configs[1].ID)

	// валюта по умолчанию.
	s.Equal(domain.DefaultCurrency, configs[0].Limits.Currency)
	s.True(decimal.NewFromFloat(1.5).Equal(configs[1].Limits.Commission))
	s.JSONEq(`{"color": "#ff0000"}`, string(configs[1].Settings))
}

func (s *PaymentMethodStoreTestSuite) TestGet() {
	cfg, err := s.store.Get(s.T().Context(), "card-deposit")
	s.Require().NoError(err)
	s.Equal("4169 0000 0000 0000", cfg.DisplayAccount())
	s.True(decimal.NewFromInt(5).Equal(cfg.Limits.MinAmount))

	_, err = s.store.Get(s.T().Context(), "paypal")
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *PaymentMethodStoreTestSuite) TestUpdate() {
	updated, err := s.store.Update(s.T().Context(), "mpay", func(cfg *domain.PaymentMethodConfig) error {
		cfg.Name = "MPay Wallet"
		cfg.Limits.MaxAmount = decimal.NewFromInt(5000)
		return nil
	})
	s.Require().NoError(err)
	s.Equal("MPay Wallet", updated.Name)

	// изменения видны новому экземпляру хранилища.
	reread, err := NewPaymentMethodStore(s.path).Get(s.T().Context(), "mpay")
	s.Require().NoError(err)
	s.Equal("MPay Wallet", reread.Name)
	s.True(decimal.NewFromInt(5000).Equal(reread.Limits.MaxAmount))
	s.JSONEq(`{"color": "#ff0000"}`, string(reread.Settings))

	// временных файлов не осталось.
	files, err := os.ReadDir(filepath.Dir(s.path))
	s.Require().NoError(err)
	s.Len(files, 1)
}

func (s *PaymentMethodStoreTestSuite) TestUpdate_LeavesFileUntouched() {
	before, err := os.ReadFile(s.path)
	s.Require().NoError(err)

	_, err = s.store.Update(s.T().Context(), "paypal", func(*domain.PaymentMethodConfig) error {
		s.Fail("mutate must not be called for unknown id")
		return nil
	})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)

	mutateErr := errors.New("invalid limits")
	_, err = s.store.Update(s.T().Context(), "mpay", func(cfg *domain.PaymentMethodConfig) error {
		cfg.Name = "changed"
		return mutateErr
	})
	s.Require().ErrorIs(err, mutateErr)

	after, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *PaymentMethodStoreTestSuite) TestConcurrentUpdates() {
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Update(s.T().Context(), "mpay", func(cfg *domain.PaymentMethodConfig) error {
				cfg.Limits.Commission = cfg.Limits.Commission.Add(decimal.NewFromInt(1))
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	cfg, err := s.store.Get(s.T().Context(), "mpay")
	s.Require().NoError(err)
	// 1.5 + 20 обновлений по 1, ни одно не потерялось.
	s.True(decimal.NewFromFloat(21.5).Equal(cfg.Limits.Commission), cfg.Limits.Commission.String())
}

func (s *PaymentMethodStoreTestSuite) TestEnsureExists() {
	path := filepath.Join(s.T().TempDir(), "nested", "methods.json")
	store := NewPaymentMethodStore(path)

	s.Require().NoError(store.EnsureExists(DefaultPaymentMethods()))
	configs, err := store.List(s.T().Context())
	s.Require().NoError(err)
	s.Len(configs, 3)

	// повторный вызов существующий файл не трогает.
	_, err = store.Update(s.T().Context(), "m10", func(cfg *domain.PaymentMethodConfig) error {
		cfg.Name = "M10 Pay"
		return nil
	})
	s.Require().NoError(err)
	s.Require().NoError(store.EnsureExists(DefaultPaymentMethods()))

	cfg, err := store.Get(s.T().Context(), "m10")
	s.Require().NoError(err)
	s.Equal("M10 Pay", cfg.Name)
}
