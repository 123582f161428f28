package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
)

func (s *HandlerTestSuite) TestListBalances() {
	s.mockBalances.EXPECT().List(gomock.Any()).
		Return([]domain.BalanceWithUser{{
			Balance: domain.Balance{UserID: 5, Balance: decimal.RequireFromString("12.5"), Currency: "AZN"},
			User:    domain.UserIdentity{ID: 5, Username: "alice"},
		}}, nil).Times(1)

	res, env := s.do(http.MethodGet, RouteGroup+BalancesRoute, nil, withAdminKey())
	s.Require().Equal(http.StatusOK, res.StatusCode)

	var items []BalanceListItemResponse
	s.Require().NoError(json.Unmarshal(env.Data, &items))
	s.Require().Len(items, 1)
	s.InDelta(12.5, items[0].Balance, 0.0001)
	s.Equal("alice", items[0].User.DisplayName)
}

func (s *HandlerTestSuite) TestSetBalance() {
	s.mockBalances.EXPECT().
		Set(gomock.Any(), int64(5), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, value decimal.Decimal) (*domain.Balance, error) {
			s.Equal("100.25", value.String())
			return &domain.Balance{UserID: 5, Balance: value, Currency: "AZN"}, nil
		}).Times(1)
	s.mockBalances.EXPECT().
		Set(gomock.Any(), int64(6), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, value decimal.Decimal) (*domain.Balance, error) {
			s.True(value.IsZero())
			return &domain.Balance{UserID: 6, Currency: "AZN"}, nil
		}).Times(1)
	s.mockBalances.EXPECT().
		Set(gomock.Any(), int64(404), gomock.Any()).
		Return(nil, domain.ErrRecordNotFound).Times(1)
	s.mockBalances.EXPECT().
		Set(gomock.Any(), int64(7), gomock.Any()).
		Return(nil, fmt.Errorf("set balance: %w", domain.ErrInvalidAmount)).Times(1)

	cases := []struct {
		name       string
		userID     int64
		body       any
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "updated",
			userID:     5,
			body:       map[string]any{"balance": 100.25},
			wantStatus: http.StatusOK,
			wantMsg:    "Balance updated successfully",
		}, {
			name:       "zero is allowed",
			userID:     6,
			body:       map[string]any{"balance": 0},
			wantStatus: http.StatusOK,
			wantMsg:    "Balance updated successfully",
		}, {
			name:       "negative",
			userID:     5,
			body:       map[string]any{"balance": -5},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid balance amount",
		}, {
			name:       "not a number",
			userID:     5,
			body:       map[string]any{"balance": "abc"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid balance amount",
		}, {
			name:       "missing",
			userID:     5,
			body:       map[string]any{},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid balance amount",
		}, {
			name:       "above column range",
			userID:     7,
			body:       map[string]any{"balance": 1e12},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid balance amount",
		}, {
			name:       "unknown user",
			userID:     404,
			body:       map[string]any{"balance": 1},
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			url := fmt.Sprintf("%s/balances/%d", RouteGroup, t.userID)
			res, env := s.do(http.MethodPut, url, t.body, withAdminKey())
			s.Equal(t.wantStatus, res.StatusCode)
			s.Equal(t.wantMsg, env.Message)
		})
	}
}

func (s *HandlerTestSuite) TestShowUser() {
	s.mockUsers.EXPECT().Profile(gomock.Any(), int64(5)).
		Return(&domain.User{ID: 5, Username: "alice"}, nil).Times(1)
	s.mockUsers.EXPECT().Profile(gomock.Any(), int64(6)).
		Return(nil, domain.ErrRecordNotFound).Times(1)

	res, _ := s.do(http.MethodGet, RouteGroup+"/users/5", nil, withAdminKey())
	s.Equal(http.StatusOK, res.StatusCode)

	res, env := s.do(http.MethodGet, RouteGroup+"/users/6", nil, withAdminKey())
	s.Equal(http.StatusNotFound, res.StatusCode)
	s.Equal("User not found", env.Message)
}
