package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedStoreLogger(slowSeconds float64, level string) (*StoreLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewStoreLogger(zap.New(core), slowSeconds, level), logs
}

func statement(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNewStoreLogger_Levels(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"silent":  gormlogger.Silent,
		"error":   gormlogger.Error,
		"warning": gormlogger.Warn,
		"debug":   gormlogger.Info,
		"bogus":   gormlogger.Warn,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			l, _ := newObservedStoreLogger(0, in)
			assert.Equal(t, want, l.level)
		})
	}
}

func TestStoreLogger_Trace(t *testing.T) {
	t.Run("error is logged with request id", func(t *testing.T) {
		l, logs := newObservedStoreLogger(0, "error")
		ctx := ContextWithRequestID(context.Background(), "req-7")

		l.Trace(ctx, time.Now(), statement(`INSERT INTO "users"`, 0), errors.New("UNIQUE constraint failed"))

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "store", entries[0].LoggerName)
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		l, logs := newObservedStoreLogger(0, "warn")
		l.Trace(context.Background(), time.Now(), statement("SELECT 1", 0), gorm.ErrRecordNotFound)
		assert.Zero(t, logs.Len())
	})

	t.Run("slow query warns", func(t *testing.T) {
		l, logs := newObservedStoreLogger(0.001, "warn")
		l.Trace(context.Background(), time.Now().Add(-time.Second), statement("SELECT * FROM users", 45), nil)

		entries := logs.FilterMessage("slow query").All()
		require.Len(t, entries, 1)
		assert.EqualValues(t, 45, entries[0].ContextMap()["rows"])
	})

	t.Run("long statements are truncated", func(t *testing.T) {
		l, logs := newObservedStoreLogger(0, "info")
		l.Trace(context.Background(), time.Now(), statement(strings.Repeat("x", 2*maxLoggedSQL), 1), nil)

		entries := logs.FilterMessage("query").All()
		require.Len(t, entries, 1)
		assert.Equal(t, true, entries[0].ContextMap()["sql_truncated"])
		assert.Len(t, entries[0].ContextMap()["sql"], maxLoggedSQL+3)
	})

	t.Run("silent mode", func(t *testing.T) {
		l, logs := newObservedStoreLogger(0, "info")
		l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), statement("SELECT 1", 1), errors.New("boom"))
		assert.Zero(t, logs.Len())
	})
}

func TestStoreLogger_Printf(t *testing.T) {
	l, logs := newObservedStoreLogger(0, "warn")

	l.Info(context.Background(), "migrated %d tables", 1)
	l.Warn(context.Background(), "column %s missing", "phone")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "column phone missing", entries[0].Message)
}
