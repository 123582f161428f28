package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var invalidBalanceErr = errors.New("Invalid balance amount") //nolint:staticcheck

type BalanceHandler struct {
	svs BalanceServicer
}

func NewBalanceHandler(svs BalanceServicer) *BalanceHandler {
	return &BalanceHandler{
		svs: svs,
	}
}

// Index GET RouteGroup + BalancesRoute. Балансы всех юзеров, большие первыми.
func (b *BalanceHandler) Index(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balances, err := b.svs.List(reqCtx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]BalanceListItemResponse, len(balances))
	for i, bl := range balances {
		response[i] = BalanceListItemResponse{
			UserID:    bl.UserID,
			Balance:   bl.Balance.Balance.InexactFloat64(),
			Currency:  bl.Currency,
			UpdatedAt: bl.UpdatedAt,
			User:      newUserIdentityResponse(bl.User),
		}
	}
	respondOK(c, http.StatusOK, "", response)
}

type SetBalanceParams struct {
	// указатель, чтобы отличить отсутствующее поле от нуля.
	Balance *decimal.Decimal `json:"balance"`
}

// Update PUT RouteGroup + BalanceRoute. Выставляет баланс юзера, создавая запись при необходимости.
func (b *BalanceHandler) Update(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var params SetBalanceParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil || params.Balance == nil || params.Balance.IsNegative() {
		_ = c.AbortWithError(http.StatusBadRequest, invalidBalanceErr).SetType(gin.ErrorTypePublic)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := b.svs.Set(reqCtx, userID, *params.Balance)
	if errors.Is(err, domain.ErrInvalidAmount) {
		_ = c.AbortWithError(http.StatusBadRequest, invalidBalanceErr).SetType(gin.ErrorTypePublic)
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		return
	}
	if err != nil {
		abortWithServiceError(c, err, "User not found")
		return
	}
	respondOK(c, http.StatusOK, "Balance updated successfully", BalanceResponse{
		Balance:  balance.Balance.InexactFloat64(),
		Currency: balance.Currency,
	})
}
