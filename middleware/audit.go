package middleware

import (
	"time"

	"quizapi/security"

	"github.com/gin-gonic/gin"
)

// Audit appends one usage line per request: endpoint, status code and
// elapsed time, keyed by the request id.
func Audit(audit *security.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			endpoint += "?" + raw
		}
		audit.APIRequest(
			GetRequestID(c),
			c.Request.Method,
			endpoint,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
