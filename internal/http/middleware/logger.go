package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger records one line per request. Scan uploads are multipart, so the
// body size is worth keeping alongside the usual request fields.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(params gin.LogFormatterParams) string {
		fields := []zap.Field{
			zap.String("method", params.Method),
			zap.String("path", params.Path),
			zap.Int("status", params.StatusCode),
			zap.Duration("latency", params.Latency),
			zap.String("client_ip", params.ClientIP),
			zap.Int64("body_size", params.Request.ContentLength),
		}
		if params.ErrorMessage != "" {
			fields = append(fields, zap.String("errors", params.ErrorMessage))
		}

		logger.Info("Request handled", fields...)
		return ""
	})
}
