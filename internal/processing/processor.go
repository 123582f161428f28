// Package processing проводит платежи через процессоры, привязанные к методам оплаты.
package processing

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/shopspring/decimal"
)

type Request struct {
	Reference   string
	UserID      int64
	Method      domain.PaymentMethod
	Amount      decimal.Decimal
	Currency    string
	Credentials domain.PaymentCredentials
}

type Result struct {
	Approved   bool
	Message    string
	ExternalID string
}

// Processor проводит платеж. Отказ процессора это Result с Approved=false, ошибка означает
// что результат неизвестен.
type Processor interface {
	Process(ctx context.Context, req Request) (Result, error)
}

type Registry struct {
	mu         sync.RWMutex
	processors map[domain.PaymentMethod]Processor
}

func NewRegistry() *Registry {
	return &Registry{processors: make(map[domain.PaymentMethod]Processor)}
}

// Register привязывает процессор к методу, заменяя предыдущий.
func (r *Registry) Register(method domain.PaymentMethod, p Processor) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processors[method] = p
	return r
}

func (r *Registry) Get(method domain.PaymentMethod) (Processor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.processors[method]
	if !ok {
		return nil, fmt.Errorf("no processor for `%s`: %w", method, domain.ErrInvalidPaymentMethod)
	}
	return p, nil
}

// Process находит процессор метода и проводит через него платеж.
func (r *Registry) Process(ctx context.Context, req Request) (Result, error) {
	p, err := r.Get(req.Method)
	if err != nil {
		return Result{}, err
	}
	return p.Process(ctx, req)
}
