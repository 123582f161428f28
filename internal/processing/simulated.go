package processing

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
)

type SimulatedConfig struct {
	Delay       time.Duration
	SuccessRate float64
	ApprovedMsg string
	DeclinedMsg string
}

// Simulated процессор-заглушка: ждет Delay и одобряет платеж с вероятностью SuccessRate.
type Simulated struct {
	cfg   SimulatedConfig
	rand  func() float64
	sleep func(ctx context.Context, d time.Duration) error
}

type SimulatedOption func(*Simulated)

// WithRand подменяет источник случайных чисел из [0, 1).
func WithRand(fn func() float64) SimulatedOption {
	return func(s *Simulated) {
		s.rand = fn
	}
}

func WithSleep(fn func(ctx context.Context, d time.Duration) error) SimulatedOption {
	return func(s *Simulated) {
		s.sleep = fn
	}
}

func NewSimulated(cfg SimulatedConfig, opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		cfg:   cfg,
		rand:  rand.Float64, //nolint:gosec
		sleep: sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulated) Process(ctx context.Context, _ Request) (Result, error) {
	if err := s.sleep(ctx, s.cfg.Delay); err != nil {
		return Result{}, err
	}
	if s.rand() < s.cfg.SuccessRate {
		return Result{Approved: true, Message: s.cfg.ApprovedMsg}, nil
	}
	return Result{Approved: false, Message: s.cfg.DeclinedMsg}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-timer.C:
		return nil
	}
}

// DefaultSimulatedConfigs задержки, вероятности и сообщения процессоров-заглушек по методам.
func DefaultSimulatedConfigs() map[domain.PaymentMethod]SimulatedConfig {
	return map[domain.PaymentMethod]SimulatedConfig{
		domain.PaymentMethodCardDeposit: {
			Delay:       1000 * time.Millisecond, //nolint:mnd
			SuccessRate: 0.95,                    //nolint:mnd
			ApprovedMsg: "Payment processed successfully",
			DeclinedMsg: "Payment declined by bank",
		},
		domain.PaymentMethodM10: {
			Delay:       800 * time.Millisecond, //nolint:mnd
			SuccessRate: 0.90,                   //nolint:mnd
			ApprovedMsg: "SMS sent to your phone for confirmation",
			DeclinedMsg: "M10 service temporarily unavailable",
		},
		domain.PaymentMethodMPay: {
			Delay:       600 * time.Millisecond, //nolint:mnd
			SuccessRate: 0.92,                   //nolint:mnd
			ApprovedMsg: "Payment processed via MPay",
			DeclinedMsg: "Insufficient funds in MPay wallet",
		},
	}
}

// NewSimulatedRegistry реестр, где каждому методу соответствует процессор-заглушка.
func NewSimulatedRegistry(opts ...SimulatedOption) *Registry {
	r := NewRegistry()
	for method, cfg := range DefaultSimulatedConfigs() {
		r.Register(method, NewSimulated(cfg, opts...))
	}
	return r
}
