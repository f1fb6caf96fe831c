package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLevel zerolog.Level
		wantErr   bool
	}{
		{"off disables logging", "off", zerolog.Disabled, false},
		{"error", "error", zerolog.ErrorLevel, false},
		{"warn", "warn", zerolog.WarnLevel, false},
		{"info", "info", zerolog.InfoLevel, false},
		{"debug upper case", "DEBUG", zerolog.DebugLevel, false},
		{"trace", "trace", zerolog.TraceLevel, false},
		{"empty defaults to info", "", zerolog.InfoLevel, false},
		{"unknown", "verbose", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, level)
		})
	}
}

func TestLogFilePath(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	got := LogFilePath("/srv/mc/.mcsi/logs", ts)
	assert.Equal(t, filepath.Join("/srv/mc/.mcsi/logs", "2024-03-09T140507Z.log"), got)
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(Close)

	t.Run("writes log file", func(t *testing.T) {
		logsDir := filepath.Join(t.TempDir(), "logs")

		logFile := SetupLogger(zerolog.DebugLevel, logsDir)
		require.NotEmpty(t, logFile)
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

		log.Info().Msg("hello from the test")
		Close()

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello from the test")
	})

	t.Run("console only without logs dir", func(t *testing.T) {
		logFile := SetupLogger(zerolog.WarnLevel, "")
		assert.Empty(t, logFile)
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})

	t.Run("off disables everything", func(t *testing.T) {
		SetupLogger(zerolog.Disabled, "")
		assert.Equal(t, zerolog.Disabled, zerolog.GlobalLevel())
	})
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("reconcile")
	assert.NotNil(t, logger)
}
