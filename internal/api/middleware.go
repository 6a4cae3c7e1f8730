package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func LoggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// AdminAuthMiddleware requires "Authorization: Bearer <token>". An empty token
// leaves the admin routes open.
func AdminAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		h := c.GetHeader("Authorization")
		given, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			ErrorResponse(c, http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware counts requests per client IP.
func RateLimitMiddleware(l limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l != nil && !l.Allow(c.Request.Context(), c.ClientIP()) {
			ErrorResponse(c, http.StatusTooManyRequests, msgTooManyTries)
			c.Abort()
			return
		}
		c.Next()
	}
}
