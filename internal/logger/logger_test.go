package logger_test

import (
	"testing"

	"github.com/maxviazov/example-crud-service/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logger.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "valid production config",
			config: &logger.LoggerConfig{
				ServiceName:    "test-service",
				ServiceVersion: "1.0.0",
				Env:            "prod",
				Level:          "info",
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "empty config falls back to prod defaults",
			config:    &logger.LoggerConfig{},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name: "dev environment defaults to debug",
			config: &logger.LoggerConfig{
				Env: "dev",
			},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name: "invalid environment rejected",
			config: &logger.LoggerConfig{
				Env: "wrong-env",
			},
			expectError: true,
		},
		{
			name: "invalid level rejected",
			config: &logger.LoggerConfig{
				Env:   "prod",
				Level: "loud",
			},
			expectError: true,
		},
		{
			name: "warn level applied globally",
			config: &logger.LoggerConfig{
				Env:   "staging",
				Level: "warn",
			},
			wantLevel: zerolog.WarnLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := logger.New(tt.config)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}
