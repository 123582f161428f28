package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// getSessionFromContext берет из контекста gin сессию текущего юзера. Сессия устанавливается в
// middlewares.AuthRequired. Если сессии нет, вернется нулевое значение.
func getSessionFromContext(c *gin.Context) domain.AuthSession {
	session, exist := c.Get(middlewares.CurrentUserKey)
	if !exist {
		return domain.AuthSession{}
	}
	s, ok := session.(domain.AuthSession)
	if !ok {
		return domain.AuthSession{}
	}
	return s
}

// parseIDParam разбирает положительный числовой параметр пути. При ошибке прерывает запрос с 400.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("invalid "+name)).SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return id, true
}

func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// abortWithBindError отвечает 400 на ошибки разбора и валидации тела. Для ошибок валидации в ответ
// добавляются поля, не прошедшие проверку.
func abortWithBindError(c *gin.Context, bindErr error) {
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  validationMessages(valErrs),
		})
		return
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
}

func validationMessages(valErrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(valErrs))
	for _, fe := range valErrs {
		msg := "failed on " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[fe.Field()] = msg
	}
	return out
}

// abortWithServiceError переводит доменную ошибку в http статус. notFoundMsg уходит клиенту при
// domain.ErrRecordNotFound, неизвестные ошибки становятся приватными 500.
func abortWithServiceError(c *gin.Context, err error, notFoundMsg string) {
	var (
		status = http.StatusInternalServerError
		public error
	)

	var (
		transitionErr *domain.TransitionError
		rangeErr      *domain.AmountRangeError
		declinedErr   *domain.DeclinedError
		credErr       *domain.CredentialsError
	)
	// клиенту уходят только фиксированные сообщения и сообщения доменных типов, цепочка
	// оборачивания с деталями репозитория остается в приватной ошибке.
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		status, public = http.StatusNotFound, errors.New(notFoundMsg)
	case errors.As(err, &transitionErr):
		status, public = http.StatusConflict, transitionErr
	case errors.Is(err, domain.ErrDuplicateKey):
		status, public = http.StatusConflict, errors.New("already exists")
	case errors.As(err, &rangeErr):
		status, public = http.StatusUnprocessableEntity, rangeErr
	case errors.As(err, &declinedErr):
		status, public = http.StatusPaymentRequired, declinedErr
	case errors.Is(err, domain.ErrInvalidStatus):
		status, public = http.StatusBadRequest, errors.New("Invalid status") //nolint:staticcheck
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		status, public = http.StatusBadRequest, errors.New("Invalid payment method") //nolint:staticcheck
	case errors.Is(err, domain.ErrInvalidAmount):
		status, public = http.StatusBadRequest, errors.New("Invalid amount") //nolint:staticcheck
	case errors.As(err, &credErr):
		status, public = http.StatusBadRequest, errors.New(credErr.Reason)
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, public = http.StatusBadRequest, errors.New("Invalid payment credentials") //nolint:staticcheck
	case errors.Is(err, domain.ErrInvalidTimeframe):
		status, public = http.StatusBadRequest, errors.New("Invalid timeframe") //nolint:staticcheck
	}

	if public == nil {
		_ = c.AbortWithError(status, err).SetType(gin.ErrorTypePrivate)
		return
	}
	_ = c.AbortWithError(status, public).SetType(gin.ErrorTypePublic)
	// исходная ошибка остается в контексте для логгера.
	_ = c.Error(err).SetType(gin.ErrorTypePrivate)
}
