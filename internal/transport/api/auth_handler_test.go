package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/service"
	"github.com/fsdevblog/paydesk/internal/transport/api/testutils"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
)

func (s *HandlerTestSuite) TestRegister() {
	user := &domain.User{
		ID:        7,
		Username:  "alice",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Profile:   domain.Profile{Email: "alice@example.com", Country: domain.DefaultCountry},
	}

	s.mockUsers.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, args service.RegisterUserArgs) (*service.AuthResult, error) {
			s.Equal("alice", args.Username)
			s.Equal("secret1", args.Password)
			s.Equal("alice@example.com", args.Profile.Email)
			s.Require().NotNil(args.Profile.BirthDate)
			s.Equal(1990, args.Profile.BirthDate.Year())
			return &service.AuthResult{User: user, Token: "jwt-token", IsNewUser: true}, nil
		}).Times(1)
	s.mockUsers.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrDuplicateKey).Times(1)

	cases := []struct {
		name       string
		body       any
		wantStatus int
		wantMsg    string
		wantField  string
	}{
		{
			name: "created",
			body: map[string]string{
				"username":  "alice",
				"password":  "secret1",
				"email":     "alice@example.com",
				"birthDate": "1990-05-01",
			},
			wantStatus: http.StatusCreated,
			wantMsg:    "User registered successfully",
		}, {
			name:       "duplicate",
			body:       map[string]string{"username": "alice", "password": "secret1"},
			wantStatus: http.StatusConflict,
			wantMsg:    "User already exists",
		}, {
			name:       "missing password",
			body:       map[string]string{"username": "alice"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "validation failed",
			wantField:  "Password",
		}, {
			name: "name over bytes limit",
			body: map[string]string{
				"username": "bob",
				"password": "secret1",
				"name":     testutils.GenerateOverBytesUnderRunes(30),
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "validation failed",
			wantField:  "Name",
		}, {
			name:       "broken json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "bad request",
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, env := s.do(http.MethodPost, RouteGroup+RegisterRoute, t.body)
			s.Equal(t.wantStatus, res.StatusCode)
			s.Equal(t.wantMsg, env.Message)
			if t.wantField != "" {
				s.Contains(env.Errors, t.wantField)
			}
			if t.wantStatus != http.StatusCreated {
				s.False(env.Success)
				return
			}

			s.True(env.Success)
			s.Equal("Bearer jwt-token", res.Header.Get("Authorization"))
			var data AuthResponse
			s.Require().NoError(json.Unmarshal(env.Data, &data))
			s.Equal("jwt-token", data.Token)
			s.Equal(int64(7), data.User.ID)
			s.Equal("alice", data.User.Username)
		})
	}
}

func (s *HandlerTestSuite) TestLogin() {
	existing := &domain.User{ID: 1, Username: "alice"}
	fresh := &domain.User{ID: 2, Username: "bob"}

	s.mockUsers.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "alice", Password: "secret1"}).
		Return(&service.AuthResult{User: existing, Token: "t1"}, nil).Times(1)
	s.mockUsers.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "bob", Password: "secret2"}).
		Return(&service.AuthResult{User: fresh, Token: "t2", IsNewUser: true}, nil).Times(1)
	s.mockUsers.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "alice", Password: "wrong"}).
		Return(nil, domain.ErrPasswordMissMatch).Times(1)
	s.mockUsers.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "carol", Password: "x"}).
		Return(nil, errors.New("db is down")).Times(1)

	cases := []struct {
		name       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "existing user",
			body:       UserLoginParams{Username: "alice", Password: "secret1"},
			wantStatus: http.StatusOK,
			wantMsg:    "Login successful",
		}, {
			name:       "auto registration",
			body:       UserLoginParams{Username: "bob", Password: "secret2"},
			wantStatus: http.StatusCreated,
			wantMsg:    "Account created and logged in successfully",
		}, {
			name:       "wrong password",
			body:       UserLoginParams{Username: "alice", Password: "wrong"},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		}, {
			name:       "missing fields",
			body:       map[string]string{"username": "dave"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Username and password are required",
		}, {
			name:       "internal error is hidden",
			body:       UserLoginParams{Username: "carol", Password: "x"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, env := s.do(http.MethodPost, RouteGroup+LoginRoute, t.body)
			s.Equal(t.wantStatus, res.StatusCode)
			s.Equal(t.wantMsg, env.Message)
			s.Equal(res.StatusCode < http.StatusBadRequest, env.Success)
		})
	}
}

func (s *HandlerTestSuite) TestLogin_RateLimit() {
	s.mockUsers.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrPasswordMissMatch).Times(3)

	body := UserLoginParams{Username: "Mallory", Password: "guess"}
	for range 3 {
		res, _ := s.do(http.MethodPost, RouteGroup+LoginRoute, body)
		s.Equal(http.StatusUnauthorized, res.StatusCode)
	}

	// регистр юзернейма не влияет на счетчик.
	res, env := s.do(http.MethodPost, RouteGroup+LoginRoute,
		UserLoginParams{Username: strings.ToLower(body.Username), Password: "guess"})
	s.Equal(http.StatusTooManyRequests, res.StatusCode)
	s.Equal("60", res.Header.Get("Retry-After"))
	s.False(env.Success)

	// окно в минуту истекло.
	s.redis.FastForward(time.Minute)
	s.mockUsers.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&service.AuthResult{User: &domain.User{ID: 3, Username: "mallory"}, Token: "t"}, nil).Times(1)
	res, _ = s.do(http.MethodPost, RouteGroup+LoginRoute, body)
	s.Equal(http.StatusOK, res.StatusCode)
}

func (s *HandlerTestSuite) TestProfileAndBalance() {
	token := s.userToken(5, "alice")

	s.mockUsers.EXPECT().Profile(gomock.Any(), int64(5)).
		Return(&domain.User{ID: 5, Username: "alice", Profile: domain.Profile{City: "Baku"}}, nil).Times(1)
	s.mockBalances.EXPECT().Get(gomock.Any(), int64(5)).
		Return(&domain.Balance{UserID: 5, Balance: decimal.RequireFromString("0.42"), Currency: "AZN"}, nil).Times(1)

	res, env := s.do(http.MethodGet, RouteGroup+ProfileRoute, nil, testutils.WithBearer(token))
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var profile UserResponse
	s.Require().NoError(json.Unmarshal(env.Data, &profile))
	s.Equal("Baku", profile.City)

	res, env = s.do(http.MethodGet, RouteGroup+AuthBalanceRoute, nil, testutils.WithBearer(token))
	s.Require().Equal(http.StatusOK, res.StatusCode)
	s.JSONEq(`{"balance":0.42,"currency":"AZN"}`, string(env.Data))
}

func (s *HandlerTestSuite) TestProfile_UserDeleted() {
	s.mockUsers.EXPECT().Profile(gomock.Any(), int64(9)).
		Return(nil, domain.ErrRecordNotFound).Times(1)

	res, env := s.do(http.MethodGet, RouteGroup+ProfileRoute, nil, testutils.WithBearer(s.userToken(9, "ghost")))
	s.Equal(http.StatusNotFound, res.StatusCode)
	s.Equal("User not found", env.Message)
}
