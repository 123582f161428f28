package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService    UserServicer
	balanceService BalanceServicer
}

func NewAuthHandler(userService UserServicer, balanceService BalanceServicer) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		balanceService: balanceService,
	}
}

type UserRegisterParams struct {
	Username  string `binding:"required,min=1,max=50"         json:"username"`
	Password  string `binding:"required,min=1,max=255"        json:"password"`
	Email     string `binding:"omitempty,email"               json:"email"`
	Name      string `binding:"max_bytes=100"                 json:"name"`
	Surname   string `binding:"max_bytes=100"                 json:"surname"`
	Mobile    string `binding:"max_bytes=32"                  json:"mobile"`
	Country   string `binding:"max_bytes=100"                 json:"country"`
	City      string `binding:"max_bytes=100"                 json:"city"`
	Address   string `binding:"max_bytes=255"                 json:"address"`
	BirthDate string `binding:"omitempty,datetime=2006-01-02" json:"birthDate"`
}

func (p UserRegisterParams) profile() domain.Profile {
	profile := domain.Profile{
		Email:   p.Email,
		Name:    p.Name,
		Surname: p.Surname,
		Mobile:  p.Mobile,
		Country: p.Country,
		City:    p.City,
		Address: p.Address,
	}
	if p.BirthDate != "" {
		// формат уже проверен валидатором.
		if bd, err := time.Parse(dateLayout, p.BirthDate); err == nil {
			profile.BirthDate = &bd
		}
	}
	return profile
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// Register POST RouteGroup + RegisterRoute. Регистрирует пользователя и выдает токен.
func (h *AuthHandler) Register(c *gin.Context) {
	var params UserRegisterParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, createErr := h.userService.Register(ctx, service.RegisterUserArgs{
		Username: params.Username,
		Password: params.Password,
		Profile:  params.profile(),
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("User already exists")).SetType(gin.ErrorTypePublic) //nolint:staticcheck
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, createErr).
			SetType(gin.ErrorTypePrivate)
		return
	}

	c.Header("Authorization", "Bearer "+result.Token)
	respondOK(c, http.StatusCreated, "User registered successfully", AuthResponse{
		User:  newUserResponse(*result.User),
		Token: result.Token,
	})
}

type UserLoginParams struct {
	Username string `binding:"required,max=50"  json:"username"`
	Password string `binding:"required,max=255" json:"password"`
}

// Login POST RouteGroup + LoginRoute. Неизвестный юзернейм регистрируется, известный проверяется
// по паролю.
func (h *AuthHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("Username and password are required")).SetType(gin.ErrorTypePublic) //nolint:staticcheck
		_ = c.Error(bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.userService.Login(ctx, service.LoginUserArgs{
		Username: params.Username,
		Password: params.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPasswordMissMatch) {
			_ = c.AbortWithError(http.StatusUnauthorized, errors.New("Invalid credentials")).SetType(gin.ErrorTypePublic) //nolint:staticcheck
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.Header("Authorization", "Bearer "+result.Token)
	status, message := http.StatusOK, "Login successful"
	if result.IsNewUser {
		status, message = http.StatusCreated, "Account created and logged in successfully"
	}
	respondOK(c, status, message, AuthResponse{
		User:  newUserResponse(*result.User),
		Token: result.Token,
	})
}

// Profile GET RouteGroup + ProfileRoute.
func (h *AuthHandler) Profile(c *gin.Context) {
	session := getSessionFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.userService.Profile(ctx, session.UserID)
	if err != nil {
		abortWithServiceError(c, err, "User not found")
		return
	}
	respondOK(c, http.StatusOK, "", newUserResponse(*user))
}

// Balance GET RouteGroup + AuthBalanceRoute. Баланс создается при первом обращении.
func (h *AuthHandler) Balance(c *gin.Context) {
	session := getSessionFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := h.balanceService.Get(ctx, session.UserID)
	if err != nil {
		abortWithServiceError(c, err, "User not found")
		return
	}
	respondOK(c, http.StatusOK, "", BalanceResponse{
		Balance:  balance.Balance.InexactFloat64(),
		Currency: balance.Currency,
	})
}
