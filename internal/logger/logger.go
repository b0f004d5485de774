package logger

import (
	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/config"
)

func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// CronLogger adapts zap to the logger interface expected by robfig/cron.
type CronLogger struct {
	log *zap.SugaredLogger
}

func NewCronLogger(log *zap.Logger) CronLogger {
	return CronLogger{log: log.Named("cron").Sugar()}
}

func (l CronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
