package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMinLevelCore_Filters(t *testing.T) {
	observed, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(&minLevelCore{Core: observed, min: zapcore.WarnLevel})

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestMinLevelCore_WithKeepsFilter(t *testing.T) {
	observed, logs := observer.New(zapcore.DebugLevel)
	core := (&minLevelCore{Core: observed, min: zapcore.ErrorLevel}).With([]zapcore.Field{
		zap.String("component", "test"),
	})

	logger := zap.New(core)
	logger.Warn("dropped")
	logger.Error("kept")

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "test", logs.All()[0].ContextMap()["component"])
}

func TestSQLVerb(t *testing.T) {
	cases := map[string]string{
		"SELECT * FROM customers":         "SELECT",
		"  select 1":                      "SELECT",
		"INSERT INTO pools VALUES (1)":    "INSERT",
		"update estimates set status='x'": "UPDATE",
		"DELETE FROM notes":               "DELETE",
		"TRUNCATE communications":         "OTHER",
		"":                                "OTHER",
	}
	for stmt, want := range cases {
		assert.Equal(t, want, sqlVerb(stmt), stmt)
	}
}
