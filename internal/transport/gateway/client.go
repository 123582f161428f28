// Package gateway HTTP клиент внешнего платежного шлюза.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const RoutePayments = "/api/payments"

// Константы минимального и максимально значения в заголовке Retry-After.
const (
	minRetryAfter     = 1
	maxRetryAfter     = 120
	defaultRetryAfter = 60 * time.Second
)

const defaultTimeout = 10 * time.Second

type StatusType string

const (
	StatusApproved StatusType = "APPROVED"
	StatusDeclined StatusType = "DECLINED"
)

type PaymentRequest struct {
	Reference   string          `json:"reference"`
	UserID      int64           `json:"userId"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Credentials json.RawMessage `json:"credentials,omitempty"`
}

type PaymentResponse struct {
	ID      string     `json:"id"`
	Status  StatusType `json:"status"`
	Message string     `json:"message"`
}

// HTTPClient клиент шлюза. Шлюз принимает платеж синхронно и сразу отвечает APPROVED или DECLINED.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) HTTPClient {
	return HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// CreatePayment отправляет платеж в шлюз.
// При ответе со статусом отличным от http.StatusOK возвращает ошибку StatusCodeError, или
// TooManyRequestError в случае http.StatusTooManyRequests. Ответ 200 без платежа дает ErrEmptyResponse.
//
//nolint:nonamedreturns
func (c HTTPClient) CreatePayment(ctx context.Context, payment PaymentRequest) (response *PaymentResponse, err error) {
	body, marshalErr := json.Marshal(payment)
	if marshalErr != nil {
		return nil, errors.Wrap(marshalErr, "marshal payment request")
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RoutePayments, bytes.NewReader(body))
	if reqErr != nil {
		return nil, errors.Wrap(reqErr, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	// повтор с тем же референсом шлюз не проводит второй раз.
	req.Header.Set("Idempotency-Key", payment.Reference)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, errors.Wrap(doErr, "do request")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close response body")
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewTooManyRequestError(parseRetryAfter(resp.Header.Get("Retry-After")))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewStatusCodeError(resp.StatusCode)
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(&response); decodeErr != nil {
		if errors.Is(decodeErr, io.EOF) {
			return nil, ErrEmptyResponse
		}
		return nil, errors.Wrap(decodeErr, "parse response")
	}
	if response == nil {
		return nil, ErrEmptyResponse
	}
	return response, nil
}

// parseRetryAfter разбирает Retry-After в секундах. Неверное значение или значение вне диапазона
// [minRetryAfter, maxRetryAfter] заменяется на defaultRetryAfter.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < minRetryAfter || seconds > maxRetryAfter {
		return defaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}
