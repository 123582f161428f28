package middlewares

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	loginRateLimitPrefix     = "rl:login:"
	defaultLoginAttempts     = 10
	loginRateLimitWindow     = time.Minute
	maxRateLimitPeekBodySize = 1 << 16
)

// LoginRateLimit ограничивает число попыток входа в минуту по юзернейму из тела запроса (или по IP,
// если юзернейма нет). Без redis и при ошибках redis запросы пропускаются.
func LoginRateLimit(cache redis.Cmdable, maxPerMin int, l *logrus.Logger) gin.HandlerFunc {
	if maxPerMin <= 0 {
		maxPerMin = defaultLoginAttempts
	}
	return func(c *gin.Context) {
		if cache == nil {
			c.Next()
			return
		}

		subject := loginSubject(c)
		key := loginRateLimitPrefix + subject
		cnt, err := cache.Incr(c, key).Result()
		if err != nil {
			if l != nil {
				l.WithError(err).Warn("login rate limit: redis unavailable")
			}
			c.Next()
			return
		}
		if cnt == 1 {
			cache.Expire(c, key, loginRateLimitWindow)
		}
		if cnt > int64(maxPerMin) {
			c.Header("Retry-After", "60")
			_ = c.AbortWithError(http.StatusTooManyRequests,
				errors.New("too many login attempts, try again later")).SetType(gin.ErrorTypePublic)
			return
		}
		c.Next()
	}
}

// loginSubject читает username из тела и возвращает тело обратно в запрос.
func loginSubject(c *gin.Context) string {
	if c.Request.Body != nil {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRateLimitPeekBodySize))
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			var req struct {
				Username string `json:"username"`
			}
			if json.Unmarshal(body, &req) == nil {
				if username := strings.ToLower(strings.TrimSpace(req.Username)); username != "" {
					return username
				}
			}
		}
	}
	return c.ClientIP()
}
