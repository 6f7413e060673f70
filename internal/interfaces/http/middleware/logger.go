package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"kyc-platform.backend/pkg/logger"
)

// health and metrics endpoints are polled constantly and only logged at debug
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// LoggerMiddleware logs each request with the request id and caller from the request context
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if quietPaths[path] {
			logger.Debug(c.Request.Context(), "Polled request",
				zap.String("path", path),
				zap.Int("status", c.Writer.Status()),
			)
			return
		}

		if raw != "" {
			path = path + "?" + raw
		}
		logger.LogRequest(c.Request.Context(), c.Request.Method, path, c.Writer.Status(), latency, c.ClientIP())
	}
}
