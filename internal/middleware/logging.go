package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workmatch-api/internal/logger"
)

// RequestLogger emits one structured log line per served request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		userID, _ := GetUserID(c)
		logger.HTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start), userID)
	}
}
