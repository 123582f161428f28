package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/service"
	"github.com/fsdevblog/paydesk/internal/transport/api/middlewares"
	"github.com/fsdevblog/paydesk/internal/transport/api/testutils"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
)

func (s *HandlerTestSuite) TestPaymentCredentials_Public() {
	s.mockPaymentMethods.EXPECT().Get(gomock.Any(), "m10").
		Return(&domain.PaymentMethodConfig{
			ID:            "m10",
			Name:          "M10",
			Type:          domain.PaymentMethodTypeMobile,
			AccountNumber: "+994501234567",
			Settings:      json.RawMessage(`{"secret":"x"}`),
			Limits: domain.PaymentMethodLimits{
				MinAmount:  decimal.NewFromInt(1),
				MaxAmount:  decimal.NewFromInt(2000),
				Commission: decimal.Zero,
				Currency:   "AZN",
			},
		}, nil).Times(1)
	s.mockPaymentMethods.EXPECT().Get(gomock.Any(), "paypal").
		Return(nil, domain.ErrRecordNotFound).Times(1)

	res, env := s.do(http.MethodGet, RouteGroup+"/payment/credentials/m10", nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	s.JSONEq(`{
		"id": "m10",
		"name": "M10",
		"type": "mobile",
		"accountNumber": "+994501234567",
		"minAmount": 1,
		"maxAmount": 2000,
		"commission": 0,
		"currency": "AZN"
	}`, string(env.Data))

	res, env = s.do(http.MethodGet, RouteGroup+"/payment/credentials/paypal", nil)
	s.Equal(http.StatusNotFound, res.StatusCode)
	s.Equal("Payment method not found", env.Message)
}

func (s *HandlerTestSuite) TestListPaymentMethods() {
	s.mockPaymentMethods.EXPECT().List(gomock.Any()).
		Return([]domain.PaymentMethodConfig{{
			ID:         "card-deposit",
			Name:       "Visa/Mastercard",
			Type:       domain.PaymentMethodTypeCard,
			CardNumber: "4169 **** **** 1234",
			Limits: domain.PaymentMethodLimits{
				MinAmount: decimal.NewFromInt(5),
				MaxAmount: decimal.NewFromInt(10000),
				Currency:  "AZN",
			},
		}}, nil).Times(1)

	res, env := s.do(http.MethodGet, RouteGroup+PaymentMethodsRoute, nil, withAdminKey())
	s.Require().Equal(http.StatusOK, res.StatusCode)

	var methods []PaymentMethodResponse
	s.Require().NoError(json.Unmarshal(env.Data, &methods))
	s.Require().Len(methods, 1)
	s.Equal("Visa/Mastercard", methods[0].Provider)
	s.Equal("4169 **** **** 1234", methods[0].AccountNumber)
	s.Equal("Active", methods[0].Status)
	s.InDelta(10000.0, methods[0].Credentials.MaxAmount, 0.0001)
}

func (s *HandlerTestSuite) TestUpdatePaymentMethod() {
	s.mockPaymentMethods.EXPECT().
		Update(gomock.Any(), "mpay", gomock.Any()).
		DoAndReturn(func(_ any, _ string, patch service.PaymentMethodPatch) (*domain.PaymentMethodConfig, error) {
			s.Equal("MPay Wallet", patch.Provider)
			s.Require().NotNil(patch.MaxAmount)
			s.Equal("5000", patch.MaxAmount.String())
			s.Nil(patch.MinAmount)
			return &domain.PaymentMethodConfig{ID: "mpay", Name: patch.Provider, Type: domain.PaymentMethodTypeWallet}, nil
		}).Times(1)
	s.mockPaymentMethods.EXPECT().
		Update(gomock.Any(), "m10", gomock.Any()).
		Return(nil, domain.ErrInvalidAmount).Times(1)
	s.mockPaymentMethods.EXPECT().
		Update(gomock.Any(), "paypal", gomock.Any()).
		Return(nil, domain.ErrRecordNotFound).Times(1)

	res, env := s.do(http.MethodPut, RouteGroup+"/payment-methods/mpay",
		map[string]any{"provider": "MPay Wallet", "maxAmount": 5000}, withAdminKey())
	s.Require().Equal(http.StatusOK, res.StatusCode)
	s.Equal("Payment method updated successfully", env.Message)

	res, _ = s.do(http.MethodPut, RouteGroup+"/payment-methods/m10",
		map[string]any{"minAmount": 100, "maxAmount": 1}, withAdminKey())
	s.Equal(http.StatusBadRequest, res.StatusCode)

	res, _ = s.do(http.MethodPut, RouteGroup+"/payment-methods/paypal",
		map[string]any{"provider": "PayPal"}, withAdminKey())
	s.Equal(http.StatusNotFound, res.StatusCode)

	res, env = s.do(http.MethodPut, RouteGroup+"/payment-methods/mpay",
		map[string]any{"currency": "dollars"}, withAdminKey())
	s.Equal(http.StatusBadRequest, res.StatusCode)
	s.Contains(env.Errors, "Currency")
}

func (s *HandlerTestSuite) TestDepositIntentFlow() {
	token := s.userToken(5, "alice")
	intent := &domain.DepositIntent{
		ID:        "0b6c3f5e-2d3a-4c55-9a53-1f1c5bb0c0a1",
		UserID:    5,
		Method:    domain.PaymentMethodCardDeposit,
		Amount:    decimal.NewFromInt(100),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(service.IntentTTL),
	}
	creds := json.RawMessage(`{"cardNumber":"4242424242424242","cardHolder":"ALICE","expiry":"12/30","cvv":"123"}`)

	s.mockPayments.EXPECT().
		CreateIntent(gomock.Any(), int64(5), "card-deposit", gomock.Any()).
		Return(intent, nil).Times(1)
	s.mockPayments.EXPECT().
		GetIntent(gomock.Any(), int64(5), intent.ID).
		Return(intent, nil).Times(1)
	s.mockPayments.EXPECT().
		ConfirmIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, args service.ConfirmIntentArgs) (*domain.Transaction, error) {
			s.Equal(int64(5), args.UserID)
			s.Equal(intent.ID, args.IntentID)
			s.True(args.SaveCard)
			s.JSONEq(string(creds), string(args.Credentials))
			trans := testTransaction(10, domain.TransactionStatusPending)
			trans.Notes = "Card payment processed successfully"
			return trans, nil
		}).Times(1)

	res, env := s.do(http.MethodPost, RouteGroup+IntentsRoute,
		map[string]any{"paymentMethod": "card-deposit", "amount": 100}, testutils.WithBearer(token))
	s.Require().Equal(http.StatusCreated, res.StatusCode)
	var created IntentResponse
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	s.Equal(intent.ID, created.ID)
	s.Equal("AZN", created.Currency)

	res, _ = s.do(http.MethodGet, RouteGroup+"/payment/intents/"+intent.ID, nil, testutils.WithBearer(token))
	s.Equal(http.StatusOK, res.StatusCode)

	res, env = s.do(http.MethodPost, RouteGroup+"/payment/intents/"+intent.ID+"/confirm",
		map[string]any{"paymentCredentials": creds, "saveCard": true}, testutils.WithBearer(token))
	s.Require().Equal(http.StatusCreated, res.StatusCode)
	var trans TransactionResponse
	s.Require().NoError(json.Unmarshal(env.Data, &trans))
	s.Equal("Card payment processed successfully", trans.Notes)
}

func (s *HandlerTestSuite) TestDepositIntentErrors() {
	token := s.userToken(5, "alice")

	s.mockPayments.EXPECT().
		CreateIntent(gomock.Any(), int64(5), "m10", gomock.Any()).
		Return(nil, &domain.AmountRangeError{Method: domain.PaymentMethodM10, Min: "1.00", Max: "2000.00"}).Times(1)
	s.mockPayments.EXPECT().
		GetIntent(gomock.Any(), int64(5), "expired").
		Return(nil, domain.ErrRecordNotFound).Times(1)
	s.mockPayments.EXPECT().
		ConfirmIntent(gomock.Any(), confirmArgsFor(5, "declined")).
		Return(nil, &domain.DeclinedError{Message: "Card payment failed. Please try again."}).Times(1)
	s.mockPayments.EXPECT().
		ConfirmIntent(gomock.Any(), confirmArgsFor(5, "bad-card")).
		Return(nil, fmt.Errorf("confirming intent: %w", domain.NewCredentialsError("Invalid card number"))).Times(1)

	res, env := s.do(http.MethodPost, RouteGroup+IntentsRoute,
		map[string]any{"paymentMethod": "m10", "amount": 5000}, testutils.WithBearer(token))
	s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
	s.Equal("amount for m10 must be between 1.00 and 2000.00", env.Message)

	res, env = s.do(http.MethodGet, RouteGroup+"/payment/intents/expired", nil, testutils.WithBearer(token))
	s.Equal(http.StatusNotFound, res.StatusCode)
	s.Equal("Deposit intent not found", env.Message)

	res, env = s.do(http.MethodPost, RouteGroup+"/payment/intents/declined/confirm",
		map[string]any{"paymentCredentials": map[string]string{"phone": "+994501234567"}}, testutils.WithBearer(token))
	s.Equal(http.StatusPaymentRequired, res.StatusCode)
	s.Equal("Card payment failed. Please try again.", env.Message)

	res, env = s.do(http.MethodPost, RouteGroup+"/payment/intents/bad-card/confirm",
		map[string]any{"paymentCredentials": map[string]string{"cardNumber": "1"}}, testutils.WithBearer(token))
	s.Equal(http.StatusBadRequest, res.StatusCode)
	s.Equal("Invalid card number", env.Message)
}

func (s *HandlerTestSuite) TestConfirmIntent_Idempotency() {
	token := s.userToken(5, "alice")
	body := map[string]any{"paymentCredentials": map[string]string{"phone": "+994501234567"}}
	key := testutils.WithHeader(middlewares.IdempotencyKeyHeader, "confirm-1")

	s.mockPayments.EXPECT().
		ConfirmIntent(gomock.Any(), confirmArgsFor(5, "i-1")).
		Return(testTransaction(10, domain.TransactionStatusPending), nil).Times(1)

	first, firstEnv := s.do(http.MethodPost, RouteGroup+"/payment/intents/i-1/confirm", body, testutils.WithBearer(token), key)
	s.Require().Equal(http.StatusCreated, first.StatusCode)

	second, secondEnv := s.do(http.MethodPost, RouteGroup+"/payment/intents/i-1/confirm", body, testutils.WithBearer(token), key)
	s.Equal(http.StatusCreated, second.StatusCode)
	s.Equal("true", second.Header.Get("Idempotent-Replayed"))
	s.JSONEq(string(firstEnv.Data), string(secondEnv.Data))
}

// confirmArgsMatcher сверяет юзера и намерение в аргументах подтверждения.
type confirmArgsMatcher struct {
	userID   int64
	intentID string
}

func confirmArgsFor(userID int64, intentID string) gomock.Matcher {
	return confirmArgsMatcher{userID: userID, intentID: intentID}
}

func (m confirmArgsMatcher) Matches(x interface{}) bool {
	args, ok := x.(service.ConfirmIntentArgs)
	return ok && args.UserID == m.userID && args.IntentID == m.intentID
}

func (m confirmArgsMatcher) String() string {
	return fmt.Sprintf("confirm of intent %q by user %d", m.intentID, m.userID)
}

func (s *HandlerTestSuite) TestSavedCards() {
	token := s.userToken(5, "alice")
	updated := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	s.mockPayments.EXPECT().ListCards(gomock.Any(), int64(5)).
		Return([]domain.SavedCard{{
			ID:        3,
			UserID:    5,
			UpdatedAt: updated,
			CreatedAt: updated,
			Card: domain.StoredCard{
				CardHolder:   "ALICE",
				MaskedNumber: "****-****-****-4242",
				Brand:        "visa",
				Expiry:       "12/30",
			},
		}}, nil).Times(1)
	s.mockPayments.EXPECT().DeleteCard(gomock.Any(), int64(5), int64(3)).Return(nil).Times(1)
	s.mockPayments.EXPECT().DeleteCard(gomock.Any(), int64(5), int64(4)).
		Return(fmt.Errorf("deleting card: %w", domain.ErrRecordNotFound)).Times(1)

	res, env := s.do(http.MethodGet, RouteGroup+CardsRoute, nil, testutils.WithBearer(token))
	s.Require().Equal(http.StatusOK, res.StatusCode)
	s.JSONEq(`{"cards":[{
		"id": 3,
		"cardHolder": "ALICE",
		"maskedNumber": "****-****-****-4242",
		"brand": "visa",
		"expiry": "12/30",
		"createdAt": "2025-06-10T12:00:00Z",
		"updatedAt": "2025-06-10T12:00:00Z"
	}]}`, string(env.Data))

	res, env = s.do(http.MethodDelete, RouteGroup+"/payment/cards/3", nil, testutils.WithBearer(token))
	s.Equal(http.StatusOK, res.StatusCode)
	s.Equal("Card deleted successfully", env.Message)

	res, env = s.do(http.MethodDelete, RouteGroup+"/payment/cards/4", nil, testutils.WithBearer(token))
	s.Equal(http.StatusNotFound, res.StatusCode)
	s.Equal("Card not found", env.Message)

	res, env = s.do(http.MethodDelete, RouteGroup+"/payment/cards/abc", nil, testutils.WithBearer(token))
	s.Equal(http.StatusBadRequest, res.StatusCode)
	s.Equal("invalid id", env.Message)

	res, _ = s.do(http.MethodGet, RouteGroup+CardsRoute, nil)
	s.Equal(http.StatusUnauthorized, res.StatusCode)
}
