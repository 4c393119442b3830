package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorHandlingMiddleware renders the last handler error as
// {"error":{"code","message"}} unless a body was already written.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		message := httpErr.Message
		if message == "" {
			message = httpErr.Error()
		}

		attrs := []any{"code", httpErr.Code, "status", httpErr.Status, "route", c.FullPath(), "path", c.Request.URL.Path}
		if httpErr.Err != nil {
			attrs = append(attrs, "error", httpErr.Err)
		}
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request rejected", attrs...)
		}

		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":    httpErr.Code,
				"message": message,
			},
		})
	}
}
