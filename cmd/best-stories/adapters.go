package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RedisLogger routes go-redis internal logging to zap
type RedisLogger struct {
	logger *zap.Logger
}

// NewRedisLogger creates a new RedisLogger adapter
func NewRedisLogger(logger *zap.Logger) *RedisLogger {
	return &RedisLogger{logger: logger.Named("redis")}
}

// Printf implements the go-redis logging interface
func (l *RedisLogger) Printf(_ context.Context, format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}
