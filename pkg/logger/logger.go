package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sweetshop/inventory-service/config"
)

// New builds the application logger from config. Development gets a console
// encoder at debug level, everything else json at the configured level.
func New(cfg *config.Config) *zap.Logger {
	level := zapcore.InfoLevel
	if l, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
		level = l
	}

	var zapCfg zap.Config
	if cfg.Server.AppEnv == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Logger.Encoding != "" {
		zapCfg.Encoding = cfg.Logger.Encoding
	}
	zapCfg.DisableCaller = cfg.Logger.DisableCaller
	zapCfg.DisableStacktrace = cfg.Logger.DisableStacktrace

	log, err := zapCfg.Build()
	if err != nil {
		// Logger construction only fails on bad config; fall back to a
		// production logger rather than crashing before we can report it.
		log = zap.Must(zap.NewProduction())
		log.Warn("falling back to production logger", zap.Error(err))
	}
	return log
}

// GinMiddleware emits one access-log line per request.
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
