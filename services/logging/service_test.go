package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewService(t *testing.T) {
	service, err := NewService(Config{Level: Info, Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, service)
	assert.NotNil(t, service.Logger())
}

func TestNilServiceIsSafe(t *testing.T) {
	var service *Service

	assert.NotPanics(t, func() {
		service.Debug("debug")
		service.Info("info")
		service.Warn("warn")
		service.Error("error")
	})
	assert.Nil(t, service.Logger())
	assert.NoError(t, service.Sync())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLogLevel(Debug))
	assert.Equal(t, zapcore.InfoLevel, parseLogLevel(Info))
	assert.Equal(t, zapcore.WarnLevel, parseLogLevel(Warn))
	assert.Equal(t, zapcore.ErrorLevel, parseLogLevel(Error))
	assert.Equal(t, zapcore.InfoLevel, parseLogLevel("bogus"))
}
