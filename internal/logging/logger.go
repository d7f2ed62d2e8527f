// Package logging provides structured file logging for csf-dashboard.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/csf-dashboard/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...any)
	// Info logs an informational message.
	Info(msg string, args ...any)
	// Warn logs a warning message.
	Warn(msg string, args ...any)
	// Error logs an error message.
	Error(msg string, args ...any)
	// With returns a new logger with additional key-value pairs.
	With(args ...any) Logger
	// Shutdown flushes any buffered logs and releases resources.
	Shutdown() error
}

// sink is the destination shared by a logger and every child made by With.
type sink struct {
	mu     sync.Mutex
	closer io.Closer
	path   string
}

func (s *sink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// loggerImpl is the charmbracelet/log based implementation. Fields attached
// with With are redacted once, when they are attached.
type loggerImpl struct {
	clogger  *clog.Logger
	redactor *redactor
	sink     *sink
}

// Init initializes a new Logger with the given configuration.
// If cfg.Enabled is false, returns a no-op logger.
// Old files are rotated away first, then entries are written as JSON to a
// fresh file named after the start time, PID and command.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	logDir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	if err := rotate(logDir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}
	path := filepath.Join(logDir, logFileName(cfg, time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := newLogger(f, cfg.Level, &sink{closer: f, path: path})
	return l.With("pid", cfg.PID, "command", cfg.Command), nil
}

func logFileName(cfg Config, started time.Time) string {
	command := strings.Join(strings.Fields(cfg.Command), "_")
	return fmt.Sprintf("%s%s_PID%d_%s.log", logFilePrefix, started.Format("20060102_150405"), cfg.PID, command)
}

// NewWriter returns a JSON logger writing to w at the given level.
// The caller owns w; Shutdown does not close it.
func NewWriter(w io.Writer, level string) Logger {
	return newLogger(w, level, &sink{})
}

func newLogger(w io.Writer, level string, s *sink) *loggerImpl {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(level),
		Formatter:       clog.JSONFormatter,
	})
	return &loggerImpl{clogger: clogger, redactor: newRedactor(), sink: s}
}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return noopLogger{}
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *loggerImpl) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *loggerImpl) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *loggerImpl) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *loggerImpl) log(level clog.Level, msg string, args []any) {
	l.clogger.Log(level, msg, l.redactor.redact(args)...)
}

func (l *loggerImpl) With(args ...any) Logger {
	return &loggerImpl{
		clogger:  l.clogger.With(l.redactor.redact(args)...),
		redactor: l.redactor,
		sink:     l.sink,
	}
}

// Shutdown closes the log file. Children created by With share it.
func (l *loggerImpl) Shutdown() error {
	return l.sink.close()
}

func (l *loggerImpl) filePath() string {
	return l.sink.path
}

type noopLogger struct{}

func (n noopLogger) Debug(msg string, args ...any) {}
func (n noopLogger) Info(msg string, args ...any)  {}
func (n noopLogger) Warn(msg string, args ...any)  {}
func (n noopLogger) Error(msg string, args ...any) {}
func (n noopLogger) With(args ...any) Logger       { return n }
func (n noopLogger) Shutdown() error               { return nil }

var (
	globalLogger     Logger
	globalLoggerOnce sync.Once
	globalLoggerMu   sync.RWMutex
)

// InitGlobal initializes the global logger using configuration from the global config.
// It is safe to call multiple times; only the first call initializes the logger.
func InitGlobal() error {
	return InitGlobalFor("")
}

// InitGlobalFor is InitGlobal with the command name recorded in every entry
// and in the log file name. An empty command keeps the binary name.
func InitGlobalFor(command string) error {
	var err error
	globalLoggerOnce.Do(func() {
		cfg := FromGlobalConfig()
		if command != "" {
			cfg.Command = command
		}
		var l Logger
		l, err = Init(cfg)
		globalLoggerMu.Lock()
		globalLogger = l
		globalLoggerMu.Unlock()
	})
	if err == nil {
		colors.SetLogger(GetGlobal())
		if path := CurrentLogFile(); path != "" {
			colors.Debug("Logging to file:", path)
		}
	}
	return err
}

// GetGlobal returns the global logger, or a no-op logger if not initialized.
func GetGlobal() Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if globalLogger == nil {
		return noopLogger{}
	}
	return globalLogger
}

// With returns a new global logger with additional key-value pairs.
func With(args ...any) Logger {
	return GetGlobal().With(args...)
}

// ShutdownGlobal shuts down the global logger.
func ShutdownGlobal() error {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger != nil {
		return globalLogger.Shutdown()
	}
	return nil
}

// CurrentLogFile returns the path of the active log file, or "" when logging
// is disabled.
func CurrentLogFile() string {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if impl, ok := globalLogger.(*loggerImpl); ok {
		return impl.filePath()
	}
	return ""
}
