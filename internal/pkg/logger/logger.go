package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger backs the package-level helpers
var defaultLogger zerolog.Logger

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config represents logger configuration
type Config struct {
	// Level is a zerolog level name; empty means info
	Level string
	// Format is FormatJSON or FormatText
	Format string
	// Service is attached to every entry when set
	Service string
	// Output defaults to os.Stdout
	Output io.Writer
}

// Configure installs the package logger and zerolog's global logger and returns it.
// Unknown levels fall back to info and are reported in the returned error.
func Configure(config Config) (zerolog.Logger, error) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	var levelErr error
	level := zerolog.InfoLevel
	if name := strings.ToLower(strings.TrimSpace(config.Level)); name != "" {
		parsed, err := zerolog.ParseLevel(name)
		if err != nil {
			levelErr = fmt.Errorf("unknown log level %q, using info", config.Level)
		} else {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	var writer io.Writer = config.Output
	if strings.EqualFold(config.Format, FormatText) {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(writer).With().Timestamp()
	if config.Service != "" {
		ctx = ctx.Str("service", config.Service)
	}
	defaultLogger = ctx.Logger()
	log.Logger = defaultLogger
	return defaultLogger, levelErr
}

// Component returns a child logger tagged with the component name
func Component(name string) zerolog.Logger {
	return defaultLogger.With().Str("component", name).Logger()
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info logs an informational message
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

func init() {
	_, _ = Configure(Config{Format: FormatText})
}
