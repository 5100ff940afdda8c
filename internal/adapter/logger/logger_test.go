package logger_test

import (
	"testing"

	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/adapter/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	l, err := logger.NewLogger(&config.App{LogLevel: "debug", Mode: config.AppModeDevelop})
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = logger.NewLogger(&config.App{LogLevel: "warn", Mode: config.AppModeProduction})
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))

	_, err = logger.NewLogger(&config.App{LogLevel: "loud"})
	assert.Error(t, err)
}
