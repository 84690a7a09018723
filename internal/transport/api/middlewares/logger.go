package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger журнал запросов. Ошибки, накопленные в контексте gin (в том числе приватные), попадают в поле errors.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"status":   status,
			"method":   c.Request.Method,
			"path":     path,
			"route":    c.FullPath(),
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
			"size":     c.Writer.Size(),
		}
		if userID, ok := c.Get(CurrentUserIDKey); ok {
			fields["userID"] = userID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		e := entry.WithFields(fields)
		switch {
		case status >= 500:
			e.Error("request failed")
		case status >= 400:
			e.Warn("request rejected")
		default:
			e.Info("request served")
		}
	}
}
