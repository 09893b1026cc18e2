// Package logger builds the zap logger and carries a request-scoped copy
// through gin contexts.
package logger

import (
	"time"

	"catalog/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	RequestIDHeader = "X-Request-ID"
	contextKey      = "logger"
)

// New returns a JSON logger in production and a console logger otherwise.
func New(env string, cfg config.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level.SetLevel(level)
	return zc.Build()
}

// Middleware stores a logger tagged with the request id on the context and
// logs one line per request once the handler chain has finished.
func Middleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := base.With(zap.String("request_id", c.GetHeader(RequestIDHeader)))
		c.Set(contextKey, log)

		c.Next()

		fields := []zapcore.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error("HTTP request failed", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("HTTP request rejected", fields...)
		default:
			log.Info("HTTP request completed", fields...)
		}
	}
}

// FromGin returns the request logger, or a no-op logger outside the middleware.
func FromGin(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(contextKey); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}
