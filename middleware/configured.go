package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireConfigured отвечает 503 на все запросы, пока не задан ключ модели.
// onMissing рисует ответ (HTML-страницу или JSON); пути из skip пропускаются.
func RequireConfigured(cfgErr error, onMissing gin.HandlerFunc, skip ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(skip))
	for _, p := range skip {
		allowed[p] = true
	}
	return func(c *gin.Context) {
		if cfgErr == nil || allowed[c.Request.URL.Path] {
			c.Next()
			return
		}
		c.Status(http.StatusServiceUnavailable)
		onMissing(c)
		c.Abort()
	}
}
