package middlewares

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKeyRequired пускает запрос только с заголовком X-Admin-Key, равным key. Пустой key
// отключает проверку.
func AdminKeyRequired(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := c.GetHeader(AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			_ = c.AbortWithError(http.StatusUnauthorized, errors.New("admin key required")).
				SetType(gin.ErrorTypePublic)
			return
		}
		c.Next()
	}
}
