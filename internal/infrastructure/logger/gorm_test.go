package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func sqlStmt(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace_Error(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Error)
	ctx := WithRequestID(context.Background(), "req-7")

	gl.Trace(ctx, time.Now(), sqlStmt("SELECT 1", 0), errors.New("connection reset"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "SQL error", entry.Message)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "req-7", entry.ContextMap()["request_id"])
}

func TestGormLogger_Trace_RecordNotFoundSuppressed(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), sqlStmt("SELECT 1", 0), gormlogger.ErrRecordNotFound)
	assert.Zero(t, logs.Len())
}

func TestGormLogger_Trace_RecordNotFoundLogged(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Error, WithRecordNotFoundLogging())

	gl.Trace(context.Background(), time.Now(), sqlStmt("SELECT 1", 0), gormlogger.ErrRecordNotFound)
	assert.Equal(t, 1, logs.Len())
}

func TestGormLogger_Trace_SlowQuery(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Millisecond))

	gl.Trace(context.Background(), time.Now().Add(-50*time.Millisecond), sqlStmt("SELECT pg_sleep(1)", 1), nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestGormLogger_Trace_Silent(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), sqlStmt("SELECT 1", 1), errors.New("ignored"))
	assert.Zero(t, logs.Len())
}

func TestGormLogger_LogMode_DoesNotMutateOriginal(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Silent)

	verbose := gl.LogMode(gormlogger.Info)
	verbose.Info(context.Background(), "visible %d", 1)
	gl.Info(context.Background(), "hidden %d", 2)

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "visible")
}

func TestMapGormLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"silent": gormlogger.Silent,
		"error":  gormlogger.Error,
		"warn":   gormlogger.Warn,
		"info":   gormlogger.Info,
		"debug":  gormlogger.Info,
		"other":  gormlogger.Warn,
	}
	for input, want := range cases {
		assert.Equal(t, want, MapGormLogLevel(input), input)
	}
}
