package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	mem "gezi/pkg/memcache"
	"gezi/pkg/utils"
)

// RateLimitMiddleware applies a per-client-IP token bucket. Requests over the
// limit get 429 without reaching the handler.
func RateLimitMiddleware(visitors mem.VisitorStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !visitors.Limiter(ip).Allow() {
			log.Printf("[%s] rate limit exceeded for %s", c.GetString("trace_id"), ip)
			c.Header("Retry-After", "60")
			utils.RespondError(c, http.StatusTooManyRequests, "Çok fazla istek", "Lütfen biraz sonra tekrar deneyin")
			c.Abort()
			return
		}
		c.Next()
	}
}
