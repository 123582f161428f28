package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *ClientTestSuite) TestCreatePayment() { //nolint:gocognit
	type tcase struct {
		name         string
		reference    string
		httpStatus   int
		retryAfter   string
		wantResponse *PaymentResponse
		wantErrType  error
		wantWait     time.Duration
	}

	cases := []tcase{
		{
			name:       "approved",
			reference:  "TXN-1",
			httpStatus: http.StatusOK,
			wantResponse: &PaymentResponse{
				ID:      "gw-1",
				Status:  StatusApproved,
				Message: "ok",
			},
		}, {
			name:       "declined",
			reference:  "TXN-2",
			httpStatus: http.StatusOK,
			wantResponse: &PaymentResponse{
				ID:      "gw-2",
				Status:  StatusDeclined,
				Message: "insufficient funds",
			},
		}, {
			name:        "too many requests",
			reference:   "TXN-3",
			httpStatus:  http.StatusTooManyRequests,
			retryAfter:  "15",
			wantErrType: new(TooManyRequestError),
			wantWait:    15 * time.Second,
		}, {
			name:        "too many requests with bad retry after",
			reference:   "TXN-4",
			httpStatus:  http.StatusTooManyRequests,
			retryAfter:  "500",
			wantErrType: new(TooManyRequestError),
			wantWait:    defaultRetryAfter,
		}, {
			name:        "internal error",
			reference:   "TXN-5",
			httpStatus:  http.StatusInternalServerError,
			wantErrType: new(StatusCodeError),
		},
	}

	// хендлер тестового сервера подбирает кейс по референсу из тела запроса.
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(RoutePayments, r.URL.Path)
		s.Equal(http.MethodPost, r.Method)

		var payment PaymentRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&payment)) //nolint:testifylint
		s.Equal(payment.Reference, r.Header.Get("Idempotency-Key"))

		var rc *tcase
		for _, c := range cases {
			if c.reference == payment.Reference {
				rc = &c
				break
			}
		}
		s.Require().NotNilf(rc, "кейс для референса %s не найден", payment.Reference) //nolint:testifylint

		if rc.retryAfter != "" {
			w.Header().Set("Retry-After", rc.retryAfter)
		}
		if rc.httpStatus == http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rc.httpStatus)
			s.NoError(json.NewEncoder(w).Encode(rc.wantResponse))
			return
		}
		w.WriteHeader(rc.httpStatus)
	}))

	for _, t := range cases {
		s.Run(t.name, func() {
			client := New(s.server.URL)
			response, err := client.CreatePayment(s.T().Context(), PaymentRequest{
				Reference: t.reference,
				UserID:    1,
				Method:    "card-deposit",
				Amount:    decimal.NewFromInt(10),
				Currency:  "AZN",
			})

			if t.wantErrType != nil {
				var statusCodeError *StatusCodeError
				var tooManyRequestError *TooManyRequestError
				switch {
				case errors.As(t.wantErrType, &statusCodeError):
					s.Require().ErrorAs(err, &statusCodeError)
					s.Equal(t.httpStatus, statusCodeError.Code)
				case errors.As(t.wantErrType, &tooManyRequestError):
					s.Require().ErrorAs(err, &tooManyRequestError)
					s.Equal(t.wantWait, tooManyRequestError.RetryAfter)
				default:
					s.FailNow("unexpected err type")
				}
				return
			}

			s.Require().NoError(err)
			s.Equal(t.wantResponse, response)
		})
	}
}

func (s *ClientTestSuite) TestCreatePayment_Unreachable() {
	client := New("http://127.0.0.1:1")
	_, err := client.CreatePayment(s.T().Context(), PaymentRequest{Reference: "TXN-X"})
	s.Require().Error(err)
	s.Contains(err.Error(), "do request")
}

func (s *ClientTestSuite) TestCreatePayment_EmptyBody() {
	for _, body := range []string{"null", ""} {
		s.Run("body `"+body+"`", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			response, err := New(server.URL).CreatePayment(s.T().Context(), PaymentRequest{Reference: "TXN-6"})
			s.Require().ErrorIs(err, ErrEmptyResponse)
			s.Nil(response)
		})
	}
}
