package middleware

import (
	"strconv"
	"time"

	"gigmatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// HTTPObserver records request metrics.
type HTTPObserver interface {
	ObserveHTTP(method, route, status string, elapsed time.Duration)
}

// RequestLogger tags each request with an id, stores a request-scoped logger
// under utils.LoggerKey and logs the outcome. observer may be nil.
func RequestLogger(base *zap.Logger, observer HTTPObserver) gin.HandlerFunc {
	if base == nil {
		base = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Set("requestId", requestID)

		logger := base.With(zap.String("requestId", requestID))
		c.Set(utils.LoggerKey, logger)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
			zap.String("ip", clientIP(c)))

		if observer != nil {
			observer.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status), elapsed)
		}
	}
}
