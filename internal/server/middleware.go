package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"auction-web/utils"
)

// RequestIDMiddleware tags each request with an id for log correlation
func RequestIDMiddleware(c *gin.Context) {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = utils.GenerateID()
	}
	c.Set("request_id", id)
	c.Header("X-Request-ID", id)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString("request_id"),
	})
}
