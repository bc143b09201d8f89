package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Astemirdum/article-rating/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Sink(t *testing.T) {
	sink := filepath.Join(t.TempDir(), "rating.log")
	log, closeLog, err := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel, Sink: sink}, "rating")
	require.NoError(t, err)

	log.Debug("dropped")
	log.Info("kept")
	closeLog()

	data, err := os.ReadFile(sink)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"kept"`)
	require.Contains(t, string(data), `"logger":"rating"`)
	require.NotContains(t, string(data), "dropped")
}

func TestNewLogger_BadSink(t *testing.T) {
	sink := filepath.Join(t.TempDir(), "missing", "dir", "rating.log")

	log, closeLog, err := logger.NewLogger(logger.Log{Sink: sink}, "rating")
	require.Error(t, err)
	require.Contains(t, err.Error(), "open log sink")
	require.Nil(t, log)
	require.Nil(t, closeLog)
}

func TestNewLogger_Stdout(t *testing.T) {
	log, closeLog, err := logger.NewLogger(logger.Log{LogLevel: zapcore.WarnLevel}, "rating")
	require.NoError(t, err)
	require.NotNil(t, log)
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	closeLog()
}
