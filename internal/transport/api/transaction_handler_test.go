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

func testTransaction(id int64, status domain.TransactionStatus) *domain.Transaction {
	return &domain.Transaction{
		ID:            id,
		UserID:        5,
		Amount:        decimal.NewFromInt(50),
		PaymentMethod: domain.PaymentMethodCardDeposit,
		Status:        status,
		Reference:     fmt.Sprintf("TXN-1717000000000-ABCDEFG%02d", id),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
		User:          &domain.UserIdentity{ID: 5, Username: "alice", Name: "Alice"},
	}
}

func (s *HandlerTestSuite) TestCreateTransaction() {
	token := s.userToken(5, "alice")

	s.mockTransactions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, args service.CreateTransactionArgs) (*domain.Transaction, error) {
			s.Equal(int64(5), args.UserID)
			s.Equal("50", args.Amount.String())
			s.Equal(domain.PaymentMethodCardDeposit, args.PaymentMethod)
			s.JSONEq(`{"cardNumber":"4242424242424242"}`, string(args.Credentials))
			return testTransaction(1, domain.TransactionStatusPending), nil
		}).Times(1)
	s.mockTransactions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("creating transaction: %w", domain.ErrInvalidAmount)).Times(1)
	s.mockTransactions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("creating transaction: %w", domain.ErrInvalidPaymentMethod)).Times(1)
	s.mockTransactions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("creating transaction: [repository/creating transaction `TXN-1-ABC`] %w: %s",
			domain.ErrInvalidAmount,
			`ERROR: new row for relation "transactions" violates check constraint (SQLSTATE 23514)`,
		)).Times(1)

	cases := []struct {
		name       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{
			name: "created",
			body: map[string]any{
				"amount":             50,
				"paymentMethod":      "card-deposit",
				"paymentCredentials": map[string]string{"cardNumber": "4242424242424242"},
			},
			wantStatus: http.StatusCreated,
			wantMsg:    "Transaction created successfully",
		}, {
			name:       "non positive amount",
			body:       map[string]any{"amount": 0, "paymentMethod": "card-deposit"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid amount",
		}, {
			name:       "missing method",
			body:       map[string]any{"amount": 10},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid payment method",
		}, {
			name:       "bad receipt url",
			body:       map[string]any{"amount": 10, "paymentMethod": "m10", "receiptUrl": "not a url"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "validation failed",
		}, {
			name:       "repository details are not exposed",
			body:       map[string]any{"amount": 1e11, "paymentMethod": "m10"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid amount",
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, env := s.do(http.MethodPost, RouteGroup+TransactionsRoute, t.body, testutils.WithBearer(token))
			s.Equal(t.wantStatus, res.StatusCode)
			s.Equal(t.wantMsg, env.Message)
			if t.wantStatus != http.StatusCreated {
				return
			}
			var trans TransactionResponse
			s.Require().NoError(json.Unmarshal(env.Data, &trans))
			s.Equal("pending", trans.Status)
			s.InDelta(50.0, trans.Amount, 0.0001)
			s.Regexp(`^TXN-\d+-[A-Z0-9]{9}$`, trans.TransactionReference)
		})
	}
}

func (s *HandlerTestSuite) TestCreateTransaction_Idempotency() {
	token := s.userToken(5, "alice")
	body := map[string]any{"amount": 50, "paymentMethod": "card-deposit"}
	key := testutils.WithHeader(middlewares.IdempotencyKeyHeader, "deposit-1")

	s.mockTransactions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(testTransaction(1, domain.TransactionStatusPending), nil).Times(1)

	first, firstEnv := s.do(http.MethodPost, RouteGroup+TransactionsRoute, body, testutils.WithBearer(token), key)
	s.Require().Equal(http.StatusCreated, first.StatusCode)

	second, secondEnv := s.do(http.MethodPost, RouteGroup+TransactionsRoute, body, testutils.WithBearer(token), key)
	s.Equal(http.StatusCreated, second.StatusCode)
	s.Equal("true", second.Header.Get("Idempotent-Replayed"))
	s.JSONEq(string(firstEnv.Data), string(secondEnv.Data))

	// тот же ключ другого юзера не пересекается с первым.
	s.mockTransactions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(testTransaction(2, domain.TransactionStatusPending), nil).Times(1)
	third, _ := s.do(http.MethodPost, RouteGroup+TransactionsRoute, body, testutils.WithBearer(s.userToken(6, "bob")), key)
	s.Equal(http.StatusCreated, third.StatusCode)
	s.Empty(third.Header.Get("Idempotent-Replayed"))
}

func (s *HandlerTestSuite) TestCreateTransaction_FailedResponseIsNotStored() {
	token := s.userToken(5, "alice")
	body := map[string]any{"amount": 50, "paymentMethod": "card-deposit"}
	key := testutils.WithHeader(middlewares.IdempotencyKeyHeader, "deposit-2")

	gomock.InOrder(
		s.mockTransactions.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("db is down")),
		s.mockTransactions.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(testTransaction(3, domain.TransactionStatusPending), nil),
	)

	res, _ := s.do(http.MethodPost, RouteGroup+TransactionsRoute, body, testutils.WithBearer(token), key)
	s.Equal(http.StatusInternalServerError, res.StatusCode)

	res, _ = s.do(http.MethodPost, RouteGroup+TransactionsRoute, body, testutils.WithBearer(token), key)
	s.Equal(http.StatusCreated, res.StatusCode)
}

func (s *HandlerTestSuite) TestListTransactions() {
	s.mockTransactions.EXPECT().
		List(gomock.Any(), service.ListTransactionsArgs{Status: "pending", PaymentMethod: "m10", Page: 2, Limit: 1}).
		Return(&service.TransactionPage{
			Items:      []domain.Transaction{*testTransaction(4, domain.TransactionStatusPending)},
			Total:      3,
			Page:       2,
			Limit:      1,
			TotalPages: 3,
		}, nil).Times(1)

	res, env := s.do(http.MethodGet,
		RouteGroup+TransactionsRoute+"?status=pending&paymentMethod=m10&page=2&limit=1", nil, withAdminKey())
	s.Require().Equal(http.StatusOK, res.StatusCode)

	var list TransactionListResponse
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	s.Len(list.Transactions, 1)
	s.Require().NotNil(list.Transactions[0].User)
	s.Equal("Alice", list.Transactions[0].User.DisplayName)
	s.Equal(PaginationResponse{Total: 3, Page: 2, Limit: 1, TotalPages: 3}, list.Pagination)

	res, _ = s.do(http.MethodGet, RouteGroup+TransactionsRoute+"?page=abc", nil, withAdminKey())
	s.Equal(http.StatusBadRequest, res.StatusCode)
}

func (s *HandlerTestSuite) TestUserTransactions() {
	s.mockTransactions.EXPECT().
		ListByUser(gomock.Any(), int64(5), service.ListTransactionsArgs{}).
		Return(&service.TransactionPage{Page: 1, Limit: 20}, nil).Times(1)

	res, env := s.do(http.MethodGet, RouteGroup+UserTransactionsRoute, nil, testutils.WithBearer(s.userToken(5, "alice")))
	s.Require().Equal(http.StatusOK, res.StatusCode)
	s.JSONEq(`{"transactions":[],"pagination":{"total":0,"page":1,"limit":20,"totalPages":0}}`, string(env.Data))
}

func (s *HandlerTestSuite) TestTransactionStats() {
	s.mockTransactions.EXPECT().
		Stats(gomock.Any(), "7d").
		Return(&domain.TransactionStats{
			Timeframe:       domain.Timeframe7d,
			Total:           3,
			Completed:       1,
			Pending:         1,
			Failed:          1,
			CompletedAmount: decimal.NewFromInt(50),
			ByMethod: []domain.MethodStats{
				{PaymentMethod: domain.PaymentMethodCardDeposit, Count: 3, TotalAmount: decimal.NewFromInt(150)},
			},
		}, nil).Times(1)
	s.mockTransactions.EXPECT().
		Stats(gomock.Any(), "1y").
		Return(nil, domain.ErrInvalidTimeframe).Times(1)

	res, env := s.do(http.MethodGet, RouteGroup+TransactionStatsRoute+"?timeframe=7d", nil, withAdminKey())
	s.Require().Equal(http.StatusOK, res.StatusCode)
	s.JSONEq(`{
		"summary": {
			"totalTransactions": 3,
			"completedTransactions": 1,
			"pendingTransactions": 1,
			"failedTransactions": 1,
			"totalAmount": 50
		},
		"byMethod": [{"paymentMethod": "card-deposit", "count": 3, "totalAmount": 150}],
		"timeframe": "7d"
	}`, string(env.Data))

	res, env = s.do(http.MethodGet, RouteGroup+TransactionStatsRoute+"?timeframe=1y", nil, withAdminKey())
	s.Equal(http.StatusBadRequest, res.StatusCode)
	s.Equal("Invalid timeframe", env.Message)
}

func (s *HandlerTestSuite) TestShowTransaction() {
	s.mockTransactions.EXPECT().Get(gomock.Any(), int64(1)).
		Return(testTransaction(1, domain.TransactionStatusCompleted), nil).Times(1)
	s.mockTransactions.EXPECT().Get(gomock.Any(), int64(404)).
		Return(nil, domain.ErrRecordNotFound).Times(1)

	res, _ := s.do(http.MethodGet, RouteGroup+"/transactions/1", nil, withAdminKey())
	s.Equal(http.StatusOK, res.StatusCode)

	res, env := s.do(http.MethodGet, RouteGroup+"/transactions/404", nil, withAdminKey())
	s.Equal(http.StatusNotFound, res.StatusCode)
	s.Equal("Transaction not found", env.Message)

	res, _ = s.do(http.MethodGet, RouteGroup+"/transactions/abc", nil, withAdminKey())
	s.Equal(http.StatusBadRequest, res.StatusCode)
}

func (s *HandlerTestSuite) TestUpdateTransactionStatus() {
	notes := "checked by operator"
	s.mockTransactions.EXPECT().
		UpdateStatus(gomock.Any(), service.UpdateStatusArgs{ID: 1, Status: "completed", Notes: &notes}).
		Return(testTransaction(1, domain.TransactionStatusCompleted), nil).Times(1)
	s.mockTransactions.EXPECT().
		UpdateStatus(gomock.Any(), service.UpdateStatusArgs{ID: 1, Status: "refunded"}).
		Return(nil, domain.ErrInvalidStatus).Times(1)
	s.mockTransactions.EXPECT().
		UpdateStatus(gomock.Any(), service.UpdateStatusArgs{ID: 2, Status: "failed"}).
		Return(nil, domain.NewTransitionError(domain.TransactionStatusCompleted, domain.TransactionStatusFailed)).Times(1)
	s.mockTransactions.EXPECT().
		UpdateStatus(gomock.Any(), service.UpdateStatusArgs{ID: 3, Status: "failed"}).
		Return(nil, domain.ErrRecordNotFound).Times(1)

	cases := []struct {
		name       string
		id         int64
		body       any
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "completed",
			id:         1,
			body:       map[string]string{"status": "completed", "notes": notes},
			wantStatus: http.StatusOK,
			wantMsg:    "Transaction status updated successfully",
		}, {
			name:       "unknown status",
			id:         1,
			body:       map[string]string{"status": "refunded"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid status",
		}, {
			name:       "terminal status",
			id:         2,
			body:       map[string]string{"status": "failed"},
			wantStatus: http.StatusConflict,
			wantMsg:    "transaction status cannot change from `completed` to `failed`",
		}, {
			name:       "not found",
			id:         3,
			body:       map[string]string{"status": "failed"},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Transaction not found",
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			url := fmt.Sprintf("%s/transactions/%d/status", RouteGroup, t.id)
			res, env := s.do(http.MethodPatch, url, t.body, withAdminKey())
			s.Equal(t.wantStatus, res.StatusCode)
			s.Equal(t.wantMsg, env.Message)
		})
	}
}

func (s *HandlerTestSuite) TestDeleteTransaction() {
	s.mockTransactions.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil).Times(1)
	s.mockTransactions.EXPECT().Delete(gomock.Any(), int64(2)).Return(domain.ErrRecordNotFound).Times(1)

	res, env := s.do(http.MethodDelete, RouteGroup+"/transactions/1", nil, withAdminKey())
	s.Equal(http.StatusOK, res.StatusCode)
	s.Equal("Transaction deleted successfully", env.Message)

	res, _ = s.do(http.MethodDelete, RouteGroup+"/transactions/2", nil, withAdminKey())
	s.Equal(http.StatusNotFound, res.StatusCode)
}
