package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls where log records go.
type Options struct {
	// Verbosity: 0 info, 1 debug, 2 and above trace.
	Verbosity int
	// LogDir receives one log file per process when set.
	LogDir string
	// DisableConsole suppresses the stderr writer.
	DisableConsole bool
}

// SetupLogger configures the global logger based on the options.
// It sets up dual output to both console and a log file and returns the
// path of the log file, or "" when no file could be opened.
func SetupLogger(opts Options) string {
	switch {
	case opts.Verbosity <= 0:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case opts.Verbosity == 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	var writers []io.Writer
	if !opts.DisableConsole {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		})
	}

	var logFile string
	var fileErr error
	if opts.LogDir != "" {
		logFile = filepath.Join(opts.LogDir, logFileName(time.Now()))
		var handle *os.File
		handle, fileErr = setupLogFile(logFile)
		if fileErr == nil {
			writers = append(writers, handle)
		} else {
			logFile = ""
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("dir", opts.LogDir).Msg("Failed to create log file, logging to console only")
	}

	if opts.Verbosity >= 1 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logFile).Msg("Logger initialized")
	return logFile
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogDuration logs the duration of an operation
func LogDuration(start time.Time, operation string) {
	log.Info().
		Str("operation", operation).
		Dur("duration", time.Since(start)).
		Msg("Operation completed")
}

func logFileName(now time.Time) string {
	return fmt.Sprintf("lovely-%s.log", now.Format("2006.01.02-15.04.05"))
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
