package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelNames lists the accepted --log-level values, quietest first.
var LevelNames = []string{"off", "error", "warn", "info", "debug", "trace"}

var logFileHandle *os.File

// ParseLevel maps a --log-level value to a zerolog level
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "off":
		return zerolog.Disabled, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	}
	return zerolog.NoLevel, errors.Newf(errors.ErrInvalidInput,
		"unknown log level %q (expected one of %s)", name, strings.Join(LevelNames, ", "))
}

// SetupLogger configures the global logger at the given level.
// Output goes to the console and, when logsDir is not empty, to a fresh
// log file inside it. The path of that file is returned ("" when none).
func SetupLogger(level zerolog.Level, logsDir string) string {
	zerolog.SetGlobalLevel(level)
	Close()

	// Configure console output with pretty printing
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    noColor(),
	}

	var writers []io.Writer
	writers = append(writers, consoleWriter)

	var logFile string
	var fileErr error
	if logsDir != "" {
		logFile = LogFilePath(logsDir, time.Now())
		logFileHandle, fileErr = setupLogFile(logFile)
		if fileErr == nil {
			writers = append(writers, logFileHandle)
		}
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	// If we couldn't create the log file, log the error now with the new logger
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
		logFile = ""
	}

	// Add caller information for debug and trace levels
	if level <= zerolog.DebugLevel && level != zerolog.Disabled {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Str("level", level.String()).Str("logFile", logFile).Msg("Logger initialized")
	return logFile
}

// Close releases the current log file, if any
func Close() {
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
	}
}

// LogFilePath returns the log file for a run started at t: an RFC 3339
// timestamp with the colons removed so it is a valid name everywhere.
func LogFilePath(logsDir string, t time.Time) string {
	name := strings.ReplaceAll(t.Format(time.RFC3339), ":", "") + ".log"
	return filepath.Join(logsDir, name)
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

func noColor() bool {
	return termenv.EnvNoColor() || !isatty.IsTerminal(os.Stderr.Fd())
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}
