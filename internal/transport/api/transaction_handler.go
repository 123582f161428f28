package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	svs TransactionServicer
}

func NewTransactionHandler(svs TransactionServicer) *TransactionHandler {
	return &TransactionHandler{svs: svs}
}

type CreateTransactionParams struct {
	Amount             decimal.Decimal `json:"amount"`
	PaymentMethod      string          `json:"paymentMethod"`
	PaymentCredentials json.RawMessage `json:"paymentCredentials"`
	ReceiptURL         string          `binding:"omitempty,url,max_bytes=2048" json:"receiptUrl"`
	Notes              string          `binding:"max_bytes=2000"               json:"notes"`
}

// Create POST RouteGroup + TransactionsRoute. Создает транзакцию текущего юзера в статусе pending.
func (h *TransactionHandler) Create(c *gin.Context) {
	session := getSessionFromContext(c)

	var params CreateTransactionParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	trans, err := h.svs.Create(ctx, service.CreateTransactionArgs{
		UserID:        session.UserID,
		Amount:        params.Amount,
		PaymentMethod: domain.PaymentMethod(params.PaymentMethod),
		Credentials:   params.PaymentCredentials,
		ReceiptURL:    params.ReceiptURL,
		Notes:         params.Notes,
	})
	if err != nil {
		abortWithServiceError(c, err, "User not found")
		return
	}
	respondOK(c, http.StatusCreated, "Transaction created successfully", newTransactionResponse(*trans))
}

type ListTransactionsQuery struct {
	Status        string `form:"status"`
	PaymentMethod string `form:"paymentMethod"`
	Page          uint   `form:"page"`
	Limit         uint   `form:"limit"`
}

func (q ListTransactionsQuery) args() service.ListTransactionsArgs {
	return service.ListTransactionsArgs{
		Status:        q.Status,
		PaymentMethod: q.PaymentMethod,
		Page:          q.Page,
		Limit:         q.Limit,
	}
}

// Index GET RouteGroup + TransactionsRoute. Админский список с фильтрами и пагинацией.
func (h *TransactionHandler) Index(c *gin.Context) {
	var query ListTransactionsQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	page, err := h.svs.List(ctx, query.args())
	if err != nil {
		abortWithServiceError(c, err, "Transaction not found")
		return
	}
	respondOK(c, http.StatusOK, "", newTransactionListResponse(page))
}

// UserIndex GET RouteGroup + UserTransactionsRoute. Транзакции текущего юзера.
func (h *TransactionHandler) UserIndex(c *gin.Context) {
	session := getSessionFromContext(c)

	var query ListTransactionsQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	page, err := h.svs.ListByUser(ctx, session.UserID, query.args())
	if err != nil {
		abortWithServiceError(c, err, "Transaction not found")
		return
	}
	respondOK(c, http.StatusOK, "", newTransactionListResponse(page))
}

// Stats GET RouteGroup + TransactionStatsRoute.
func (h *TransactionHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	stats, err := h.svs.Stats(ctx, c.Query("timeframe"))
	if err != nil {
		abortWithServiceError(c, err, "Transaction not found")
		return
	}
	respondOK(c, http.StatusOK, "", newStatsResponse(stats))
}

// Show GET RouteGroup + TransactionRoute.
func (h *TransactionHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	trans, err := h.svs.Get(ctx, id)
	if err != nil {
		abortWithServiceError(c, err, "Transaction not found")
		return
	}
	respondOK(c, http.StatusOK, "", newTransactionResponse(*trans))
}

type UpdateStatusParams struct {
	Status string  `json:"status"`
	Notes  *string `binding:"omitempty,max_bytes=2000" json:"notes"`
}

// UpdateStatus PATCH RouteGroup + TransactionStatusRoute. Переводит pending транзакцию в конечный статус.
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params UpdateStatusParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	trans, err := h.svs.UpdateStatus(ctx, service.UpdateStatusArgs{
		ID:     id,
		Status: params.Status,
		Notes:  params.Notes,
	})
	if err != nil {
		abortWithServiceError(c, err, "Transaction not found")
		return
	}
	respondOK(c, http.StatusOK, "Transaction status updated successfully", newTransactionResponse(*trans))
}

// Delete DELETE RouteGroup + TransactionRoute.
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.Delete(ctx, id); err != nil {
		abortWithServiceError(c, err, "Transaction not found")
		return
	}
	respondOK(c, http.StatusOK, "Transaction deleted successfully", nil)
}
