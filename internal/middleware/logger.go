package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger middleware logs HTTP requests as
// "[HTTP] METHOD path?query status latency bytes route errors"
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "-"
		}
		log.Printf("[HTTP] %s %s %s %d %v %dB %s %s",
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
			route,
			c.Errors.String(),
		)
	}
}
