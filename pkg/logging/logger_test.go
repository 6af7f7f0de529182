package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"yatube/pkg/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.LoggingConfig
		enable zapcore.Level
		skip   zapcore.Level
	}{
		{"json info", config.LoggingConfig{Level: "info", Format: "json"}, zapcore.InfoLevel, zapcore.DebugLevel},
		{"text debug", config.LoggingConfig{Level: "DEBUG", Format: "text"}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"bad level falls back to info", config.LoggingConfig{Level: "loud", Format: "json"}, zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			require.NoError(t, InitLogger(&tt.cfg))
			require.NotNil(t, Logger)
			require.True(t, Logger.Core().Enabled(tt.enable))
			require.False(t, Logger.Core().Enabled(tt.skip))
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	Logger = nil
	require.NotNil(t, GetLogger())
	require.NotNil(t, WithComponent("test"))
}
