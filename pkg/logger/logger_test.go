package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	assert.NotNil(t, logger)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)

	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGlobalVariables(t *testing.T) {
	ctx := context.Background()
	logger1 := G(ctx)
	logger2 := G(ctx)

	assert.Equal(t, logger1.Logger, logger2.Logger)

	assert.NotNil(t, L)
	assert.IsType(t, &logrus.Entry{}, L)
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()

	customLogger := logrus.NewEntry(logrus.New())
	ctxWithLogger := WithLogger(ctx, customLogger)

	retrieved := GetLogger(ctxWithLogger)
	assert.Equal(t, customLogger.Logger, retrieved.Logger)
}

func TestGetLoggerFallback(t *testing.T) {
	ctx := context.Background()

	retrieved := GetLogger(ctx)
	assert.Equal(t, L.Logger, retrieved.Logger)
}

func TestSetLogLevel(t *testing.T) {
	t.Run("valid level", func(t *testing.T) {
		defer func() { require.NoError(t, SetLogLevel("info")) }()

		require.NoError(t, SetLogLevel("debug"))
		assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
	})

	t.Run("invalid level", func(t *testing.T) {
		err := SetLogLevel("not-a-level")
		assert.Error(t, err)
	})
}

func TestSetLogFormatJSON(t *testing.T) {
	defer SetLogFormat("text")

	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)

	SetLogFormat("json")
	L.WithField("component", "collector").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "info", entry["logLevel"])
	assert.Equal(t, "collector", entry["component"])
	assert.NotEmpty(t, entry["timestamp"])
}
