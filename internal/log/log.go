package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// LogLevel represents the logging level
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
	LevelFatal LogLevel = "fatal"
	LevelNone  LogLevel = "none"
)

// EnvLogLevel names the environment variable consulted for the initial level.
const EnvLogLevel = "BREPPY_LOG_LEVEL"

var (
	output  io.Writer = os.Stderr
	noColor bool
	current LogLevel = LevelInfo
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	configureLogger(getLogLevel())
}

// configureLogger sets up the logger with the specified level
func configureLogger(level LogLevel) {
	console := zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	log = zerolog.New(console).With().Timestamp().Logger()
	setLogLevel(level)
}

// getLogLevel determines the log level from environment. An invalid value
// keeps the info level here; the CLI reports it when parsing its flags.
func getLogLevel() LogLevel {
	if envLevel := os.Getenv(EnvLogLevel); envLevel != "" {
		if level, err := ParseLevel(envLevel); err == nil {
			return level
		}
	}
	return LevelInfo
}

// ParseLevel normalizes a user supplied level name and rejects unknown ones.
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	switch level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, LevelNone:
		return level, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

func setLogLevel(level LogLevel) {
	current = level
	switch level {
	case LevelDebug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case LevelInfo:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case LevelWarn:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case LevelError:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case LevelFatal:
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case LevelNone:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// SetLevel sets the global log level
func SetLevel(level LogLevel) {
	configureLogger(level)
}

// SetOutput redirects log output without colors, mainly for tests.
func SetOutput(w io.Writer) {
	output = w
	noColor = true
	configureLogger(current)
}

// Debug returns a new Debug level event logger with component context
func Debug(component string) *zerolog.Event {
	return log.Debug().Str("component", component)
}

// Info returns a new Info level event logger with component context
func Info(component string) *zerolog.Event {
	return log.Info().Str("component", component)
}

// Warn returns a new Warn level event logger with component context
func Warn(component string) *zerolog.Event {
	return log.Warn().Str("component", component)
}

// Error returns a new Error level event logger with component context
func Error(component string) *zerolog.Event {
	return log.Error().Str("component", component)
}

// Fatal returns a new Fatal level event logger with component context
func Fatal(component string) *zerolog.Event {
	return log.Fatal().Str("component", component)
}
