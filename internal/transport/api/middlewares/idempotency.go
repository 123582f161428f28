package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"

	idempotencyPrefix       = "idempotency:v1:"
	inProgressMarker        = "__in_progress__"
	idempotencyStoreTimeout = 2 * time.Second
	DefaultIdempotencyTTL   = 24 * time.Hour
)

type storedResponse struct {
	Status  int               `json:"status"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s) //nolint:wrapcheck
}

// Idempotency сохраняет в redis успешный ответ на запрос с заголовком Idempotency-Key и отдает его же
// на повторы. Повтор во время обработки получает 409. Запросы без заголовка и без redis проходят как есть.
// Неуспешный ответ не сохраняется, запрос можно повторить с тем же ключом.
func Idempotency(cache redis.Cmdable, ttl time.Duration, l *logrus.Logger) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if cache == nil || key == "" {
			c.Next()
			return
		}
		// ключи разных юзеров и разных путей не пересекаются.
		cacheKey := idempotencyPrefix + sessionScope(c) + c.Request.URL.Path + ":" + key

		ctx, cancel := context.WithTimeout(c, idempotencyStoreTimeout)
		defer cancel()

		reserved, err := cache.SetNX(ctx, cacheKey, inProgressMarker, ttl).Result()
		if err != nil {
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
			return
		}
		if !reserved {
			replay(c, cache, cacheKey, l)
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		storeCtx, storeCancel := context.WithTimeout(context.WithoutCancel(c), idempotencyStoreTimeout)
		defer storeCancel()

		status := recorder.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			cache.Del(storeCtx, cacheKey)
			return
		}

		stored := storedResponse{
			Status:  status,
			Body:    recorder.body.String(),
			Headers: map[string]string{"Content-Type": recorder.Header().Get("Content-Type")},
		}
		payload, jsonErr := json.Marshal(stored)
		if jsonErr == nil {
			jsonErr = cache.Set(storeCtx, cacheKey, payload, ttl).Err()
		}
		if jsonErr != nil {
			cache.Del(storeCtx, cacheKey)
			if l != nil {
				l.WithError(jsonErr).WithField("key", key).Error("failed to persist idempotent response")
			}
		}
	}
}

func replay(c *gin.Context, cache redis.Cmdable, cacheKey string, l *logrus.Logger) {
	cached, err := cache.Get(c, cacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// ключ истек между SETNX и GET.
			_ = c.AbortWithError(http.StatusConflict, errors.New("duplicate request, retry")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	if cached == inProgressMarker {
		_ = c.AbortWithError(http.StatusConflict, errors.New("duplicate request currently processing")).
			SetType(gin.ErrorTypePublic)
		return
	}

	var stored storedResponse
	if jsonErr := json.Unmarshal([]byte(cached), &stored); jsonErr != nil {
		if l != nil {
			l.WithError(jsonErr).Warn("failed to decode stored idempotent response")
		}
		_ = c.AbortWithError(http.StatusConflict, errors.New("duplicate request")).SetType(gin.ErrorTypePublic)
		return
	}
	for header, value := range stored.Headers {
		c.Header(header, value)
	}
	c.Header("Idempotent-Replayed", "true")
	c.Status(stored.Status)
	_, _ = c.Writer.WriteString(stored.Body)
	c.Abort()
}

func sessionScope(c *gin.Context) string {
	if session, ok := c.Value(CurrentUserKey).(domain.AuthSession); ok {
		return strconv.FormatInt(session.UserID, 10) + ":"
	}
	return ""
}
