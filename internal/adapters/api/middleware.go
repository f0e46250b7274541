package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cityweather.app/internal/ports"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	maxRequestIDLen = 128
)

// requestIDMiddleware propagates an incoming X-Request-ID or assigns a new one
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// recoveryMiddleware renders the error page instead of dropping the connection.
// It is registered after the access log and metrics so a panic is still
// logged and counted.
func recoveryMiddleware(s *HTTPServerAdapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Panic while handling request",
					ports.F("request_id", c.GetString(requestIDKey)),
					ports.F("path", c.Request.URL.Path),
					ports.F("panic", fmt.Sprint(r)))
				s.renderError(c, http.StatusInternalServerError, "Something went wrong",
					[]string{"internal server error"})
				c.Abort()
			}
		}()
		c.Next()
	}
}

func accessLogMiddleware(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request served",
			ports.F("request_id", c.GetString(requestIDKey)),
			ports.F("method", c.Request.Method),
			ports.F("path", c.Request.URL.Path),
			ports.F("status", c.Writer.Status()),
			ports.F("duration_ms", time.Since(start).Milliseconds()))
	}
}

func metricsMiddleware(metrics RequestMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(route, c.Writer.Status(), time.Since(start))
	}
}
