package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/paydesk/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentMethodHandler struct {
	svs PaymentMethodServicer
}

func NewPaymentMethodHandler(svs PaymentMethodServicer) *PaymentMethodHandler {
	return &PaymentMethodHandler{svs: svs}
}

// Index GET RouteGroup + PaymentMethodsRoute.
func (h *PaymentMethodHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	methods, err := h.svs.List(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		response[i] = newPaymentMethodResponse(m)
	}
	respondOK(c, http.StatusOK, "", response)
}

type UpdatePaymentMethodParams struct {
	Provider      string           `binding:"max_bytes=100"         json:"provider"`
	AccountNumber string           `binding:"max_bytes=64"          json:"accountNumber"`
	ExpiryDate    string           `binding:"max_bytes=16"          json:"expiryDate"`
	QRCode        string           `binding:"max_bytes=2048"        json:"qrCode"`
	Currency      string           `binding:"omitempty,len=3,alpha" json:"currency"`
	MinAmount     *decimal.Decimal `json:"minAmount"`
	MaxAmount     *decimal.Decimal `json:"maxAmount"`
	Commission    *decimal.Decimal `json:"commission"`
}

// Update PUT RouteGroup + PaymentMethodRoute. Меняет переданные поля метода оплаты.
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	var params UpdatePaymentMethodParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	method, err := h.svs.Update(ctx, c.Param("id"), service.PaymentMethodPatch{
		Provider:      params.Provider,
		AccountNumber: params.AccountNumber,
		ExpiryDate:    params.ExpiryDate,
		QRCode:        params.QRCode,
		Currency:      params.Currency,
		MinAmount:     params.MinAmount,
		MaxAmount:     params.MaxAmount,
		Commission:    params.Commission,
	})
	if err != nil {
		abortWithServiceError(c, err, "Payment method not found")
		return
	}
	respondOK(c, http.StatusOK, "Payment method updated successfully", newPaymentMethodResponse(*method))
}

// Credentials GET RouteGroup + PaymentCredentialsRoute. Публичные данные метода для страницы пополнения.
func (h *PaymentMethodHandler) Credentials(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	method, err := h.svs.Get(ctx, c.Param("method"))
	if err != nil {
		abortWithServiceError(c, err, "Payment method not found")
		return
	}
	respondOK(c, http.StatusOK, "", newPublicPaymentMethodResponse(*method))
}
