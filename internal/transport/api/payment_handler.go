package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fsdevblog/paydesk/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	svs PaymentServicer
}

func NewPaymentHandler(svs PaymentServicer) *PaymentHandler {
	return &PaymentHandler{svs: svs}
}

type CreateIntentParams struct {
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
}

// CreateIntent POST RouteGroup + IntentsRoute. Фиксирует метод и сумму пополнения до ввода платежных данных.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	session := getSessionFromContext(c)

	var params CreateIntentParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	intent, err := h.svs.CreateIntent(ctx, session.UserID, params.PaymentMethod, params.Amount)
	if err != nil {
		abortWithServiceError(c, err, "Payment method not found")
		return
	}
	respondOK(c, http.StatusCreated, "", newIntentResponse(*intent))
}

// ShowIntent GET RouteGroup + IntentRoute.
func (h *PaymentHandler) ShowIntent(c *gin.Context) {
	session := getSessionFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	intent, err := h.svs.GetIntent(ctx, session.UserID, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Deposit intent not found")
		return
	}
	respondOK(c, http.StatusOK, "", newIntentResponse(*intent))
}

type ConfirmIntentParams struct {
	PaymentCredentials json.RawMessage `json:"paymentCredentials"`
	SaveCard           bool            `json:"saveCard"`
}

// ConfirmIntent POST RouteGroup + IntentConfirmRoute. Проводит платеж через процессор метода и создает
// транзакцию. Отказ процессора отдается как 402.
func (h *PaymentHandler) ConfirmIntent(c *gin.Context) {
	session := getSessionFromContext(c)

	var params ConfirmIntentParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	// обработка платежа отвязана от запроса внутри сервиса, здесь таймаут не нужен.
	trans, err := h.svs.ConfirmIntent(c, service.ConfirmIntentArgs{
		UserID:      session.UserID,
		IntentID:    c.Param("id"),
		Credentials: params.PaymentCredentials,
		SaveCard:    params.SaveCard,
	})
	if err != nil {
		abortWithServiceError(c, err, "Deposit intent not found")
		return
	}
	respondOK(c, http.StatusCreated, "Transaction created successfully", newTransactionResponse(*trans))
}

// Cards GET RouteGroup + CardsRoute. Сохраненные карты текущего юзера.
func (h *PaymentHandler) Cards(c *gin.Context) {
	session := getSessionFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	cards, err := h.svs.ListCards(ctx, session.UserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	response := make([]SavedCardResponse, len(cards))
	for i, card := range cards {
		response[i] = newSavedCardResponse(card)
	}
	respondOK(c, http.StatusOK, "", gin.H{"cards": response})
}

// DeleteCard DELETE RouteGroup + CardRoute.
func (h *PaymentHandler) DeleteCard(c *gin.Context) {
	session := getSessionFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.DeleteCard(ctx, session.UserID, id); err != nil {
		abortWithServiceError(c, err, "Card not found")
		return
	}
	respondOK(c, http.StatusOK, "Card deleted successfully", nil)
}
