package processing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fsdevblog/paydesk/internal/transport/gateway"
)

type GatewayClient interface {
	CreatePayment(ctx context.Context, payment gateway.PaymentRequest) (*gateway.PaymentResponse, error)
}

// Gateway проводит платежи через внешний шлюз.
type Gateway struct {
	client GatewayClient
}

func NewGateway(client GatewayClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Process(ctx context.Context, req Request) (Result, error) {
	var creds json.RawMessage
	if req.Credentials != nil {
		b, err := json.Marshal(req.Credentials)
		if err != nil {
			return Result{}, fmt.Errorf("gateway: marshal credentials: %w", err)
		}
		creds = b
	}

	resp, err := g.client.CreatePayment(ctx, gateway.PaymentRequest{
		Reference:   req.Reference,
		UserID:      req.UserID,
		Method:      string(req.Method),
		Amount:      req.Amount,
		Currency:    req.Currency,
		Credentials: creds,
	})
	if err != nil {
		return Result{}, fmt.Errorf("gateway: %w", err)
	}
	if resp == nil {
		return Result{}, fmt.Errorf("gateway: %w", gateway.ErrEmptyResponse)
	}

	switch resp.Status {
	case gateway.StatusApproved:
		return Result{Approved: true, Message: resp.Message, ExternalID: resp.ID}, nil
	case gateway.StatusDeclined:
		return Result{Approved: false, Message: resp.Message, ExternalID: resp.ID}, nil
	default:
		return Result{}, fmt.Errorf("gateway: unexpected payment status `%s`", resp.Status)
	}
}
