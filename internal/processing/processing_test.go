package processing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/transport/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleep(context.Context, time.Duration) error { return nil }

func TestSimulated_Process(t *testing.T) {
	cfg := DefaultSimulatedConfigs()[domain.PaymentMethodM10]

	cases := []struct {
		name     string
		roll     float64
		approved bool
		message  string
	}{
		{name: "approved", roll: 0.10, approved: true, message: "SMS sent to your phone for confirmation"},
		{name: "declined at rate edge", roll: 0.90, approved: false, message: "M10 service temporarily unavailable"},
		{name: "declined", roll: 0.99, approved: false, message: "M10 service temporarily unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var slept time.Duration
			p := NewSimulated(cfg,
				WithRand(func() float64 { return tc.roll }),
				WithSleep(func(_ context.Context, d time.Duration) error {
					slept = d
					return nil
				}),
			)
			res, err := p.Process(t.Context(), Request{Method: domain.PaymentMethodM10})
			require.NoError(t, err)
			assert.Equal(t, tc.approved, res.Approved)
			assert.Equal(t, tc.message, res.Message)
			assert.Equal(t, 800*time.Millisecond, slept)
		})
	}
}

func TestSimulated_ContextCanceled(t *testing.T) {
	p := NewSimulated(SimulatedConfig{Delay: time.Minute, SuccessRate: 1})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := p.Process(ctx, Request{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRegistry(t *testing.T) {
	r := NewSimulatedRegistry(WithRand(func() float64 { return 0 }), WithSleep(noSleep))

	for _, method := range domain.PaymentMethods() {
		res, err := r.Process(t.Context(), Request{Method: method})
		require.NoError(t, err, method)
		assert.True(t, res.Approved)
	}

	_, err := r.Get("crypto")
	require.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
}

type fakeGatewayClient struct {
	got  gateway.PaymentRequest
	resp *gateway.PaymentResponse
	err  error
}

func (f *fakeGatewayClient) CreatePayment(
	_ context.Context,
	payment gateway.PaymentRequest,
) (*gateway.PaymentResponse, error) {
	f.got = payment
	return f.resp, f.err
}

func TestGateway_Process(t *testing.T) {
	creds, err := domain.ParsePaymentCredentials(domain.PaymentMethodMPay, json.RawMessage(`{"walletId":"w-1"}`))
	require.NoError(t, err)

	req := Request{
		Reference:   "TXN-1-ABC",
		UserID:      7,
		Method:      domain.PaymentMethodMPay,
		Amount:      decimal.RequireFromString("12.50"),
		Currency:    "AZN",
		Credentials: creds,
	}

	t.Run("approved", func(t *testing.T) {
		client := &fakeGatewayClient{resp: &gateway.PaymentResponse{ID: "gw-1", Status: gateway.StatusApproved, Message: "ok"}}
		res, err := NewGateway(client).Process(t.Context(), req)
		require.NoError(t, err)
		assert.Equal(t, Result{Approved: true, Message: "ok", ExternalID: "gw-1"}, res)
		assert.Equal(t, "TXN-1-ABC", client.got.Reference)
		assert.Equal(t, "mpay", client.got.Method)
		assert.JSONEq(t, `{"walletId":"w-1"}`, string(client.got.Credentials))
	})

	t.Run("declined", func(t *testing.T) {
		client := &fakeGatewayClient{resp: &gateway.PaymentResponse{ID: "gw-2", Status: gateway.StatusDeclined, Message: "no"}}
		res, err := NewGateway(client).Process(t.Context(), req)
		require.NoError(t, err)
		assert.False(t, res.Approved)
	})

	t.Run("unknown status", func(t *testing.T) {
		client := &fakeGatewayClient{resp: &gateway.PaymentResponse{Status: "PROCESSING"}}
		_, err := NewGateway(client).Process(t.Context(), req)
		require.Error(t, err)
	})

	t.Run("empty response", func(t *testing.T) {
		_, err := NewGateway(&fakeGatewayClient{}).Process(t.Context(), req)
		require.ErrorIs(t, err, gateway.ErrEmptyResponse)
	})

	t.Run("transport error", func(t *testing.T) {
		client := &fakeGatewayClient{err: gateway.NewStatusCodeError(502)}
		_, err := NewGateway(client).Process(t.Context(), req)
		var scErr *gateway.StatusCodeError
		require.True(t, errors.As(err, &scErr))
		assert.Equal(t, 502, scErr.Code)
	})
}
