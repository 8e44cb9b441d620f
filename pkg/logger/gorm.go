package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxLoggedSQL caps the statement length written to a single entry
const maxLoggedSQL = 1000

var gormLevels = map[string]gormlogger.LogLevel{
	"silent":  gormlogger.Silent,
	"error":   gormlogger.Error,
	"warn":    gormlogger.Warn,
	"warning": gormlogger.Warn,
	"info":    gormlogger.Info,
	"debug":   gormlogger.Info,
}

// StoreLogger writes users store statements to zap. Errors other than
// gorm.ErrRecordNotFound are always logged, slow statements at warn and
// everything else only at info.
type StoreLogger struct {
	log   *zap.Logger
	slow  time.Duration
	level gormlogger.LogLevel
}

var _ gormlogger.Interface = (*StoreLogger)(nil)

// NewStoreLogger maps the application log level onto GORM's; unknown levels mean warn.
// A zero slowQuerySeconds turns slow statement reporting off.
func NewStoreLogger(l *zap.Logger, slowQuerySeconds float64, level string) *StoreLogger {
	lvl, ok := gormLevels[level]
	if !ok {
		lvl = gormlogger.Warn
	}

	return &StoreLogger{
		log:   l.Named("store"),
		slow:  time.Duration(slowQuerySeconds * float64(time.Second)),
		level: lvl,
	}
}

// LogMode implements gormlogger.Interface
func (s *StoreLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *s
	cp.level = level
	return &cp
}

func (s *StoreLogger) Info(ctx context.Context, msg string, data ...any) {
	s.printf(ctx, gormlogger.Info, msg, data)
}

func (s *StoreLogger) Warn(ctx context.Context, msg string, data ...any) {
	s.printf(ctx, gormlogger.Warn, msg, data)
}

func (s *StoreLogger) Error(ctx context.Context, msg string, data ...any) {
	s.printf(ctx, gormlogger.Error, msg, data)
}

func (s *StoreLogger) printf(ctx context.Context, at gormlogger.LogLevel, msg string, data []any) {
	if s.level < at {
		return
	}

	l := WithContext(ctx, s.log)
	text := fmt.Sprintf(msg, data...)
	switch at {
	case gormlogger.Error:
		l.Error(text)
	case gormlogger.Warn:
		l.Warn(text)
	default:
		l.Info(text)
	}
}

// Trace implements gormlogger.Interface
func (s *StoreLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if s.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	l := WithContext(ctx, s.log)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.Error("query failed", append(statementFields(fc, elapsed), zap.Error(err))...)
	case s.slow > 0 && elapsed > s.slow && s.level >= gormlogger.Warn:
		l.Warn("slow query", append(statementFields(fc, elapsed), zap.Duration("threshold", s.slow))...)
	case s.level >= gormlogger.Info:
		l.Info("query", statementFields(fc, elapsed)...)
	}
}

func statementFields(fc func() (string, int64), elapsed time.Duration) []zap.Field {
	sql, rows := fc()

	fields := make([]zap.Field, 0, 5)
	if len(sql) > maxLoggedSQL {
		sql = sql[:maxLoggedSQL] + "..."
		fields = append(fields, zap.Bool("sql_truncated", true))
	}

	return append(fields,
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	)
}
